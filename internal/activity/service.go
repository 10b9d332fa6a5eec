package activity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sweetchef/sc-dashboard/internal/clients"
	"github.com/sweetchef/sc-dashboard/internal/normalize"
	"github.com/sweetchef/sc-dashboard/internal/platform/cache"
	"github.com/sweetchef/sc-dashboard/internal/sales"
)

// windowMonths is how far back the activity grid looks.
const windowMonths = 18

// Service builds activity reports from the invoice stream and the
// client dimension.
type Service struct {
	sales   sales.Repository
	clients clients.Repository
	cache   *cache.Cache
}

// NewService constructs a Service.
func NewService(salesRepo sales.Repository, clientRepo clients.Repository, c *cache.Cache) *Service {
	return &Service{sales: salesRepo, clients: clientRepo, cache: c}
}

type clientAcc struct {
	client    string
	vendeur   string
	ville     string
	totalHT   float64
	commandes int
	months    map[string]struct{}
	first     string
}

// Active returns the activity grid for the target month. An empty mois
// defaults to the month of the newest imported invoice.
func (s *Service) Active(ctx context.Context, mois string) (Report, error) {
	mois, err := s.resolveMonth(ctx, mois)
	if err != nil {
		return Report{}, err
	}
	key, err := s.cache.Key(ctx, "reports", "activity", mois)
	if err != nil {
		return Report{}, err
	}
	var out Report
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		report, err := s.build(ctx, mois)
		if err != nil {
			return nil, err
		}
		return report, nil
	})
	return out, err
}

// Inactive returns the clients with no orders in the target month nor
// the two months before it: the activity rows whose three flags are all
// Négatif, plus every dimension client with no invoice anywhere in the
// window. The second group is the churn the report exists to surface.
func (s *Service) Inactive(ctx context.Context, mois string) (Report, error) {
	full, err := s.Active(ctx, mois)
	if err != nil {
		return Report{}, err
	}
	dimension, err := s.clients.ListAll(ctx)
	if err != nil {
		return Report{}, err
	}

	out := Report{Mois: full.Mois}
	seen := make(map[string]struct{}, len(full.Clients))
	for _, c := range full.Clients {
		seen[c.CodeClient] = struct{}{}
		if c.FlagM == FlagNegatif && c.FlagM1 == FlagNegatif && c.FlagM2 == FlagNegatif {
			out.Clients = append(out.Clients, c)
		}
	}

	var silent []ClientActivity
	for _, d := range dimension {
		code := normalize.NormalizeCode(d.CodeClient)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		silent = append(silent, ClientActivity{
			CodeClient: code,
			Client:     d.Societe,
			Vendeur:    d.Vendeur,
			Ville:      d.Ville,
			FlagM:      FlagNegatif,
			FlagM1:     FlagNegatif,
			FlagM2:     FlagNegatif,
		})
	}
	sort.Slice(silent, func(i, j int) bool {
		return silent[i].CodeClient < silent[j].CodeClient
	})
	out.Clients = append(out.Clients, silent...)
	return out, nil
}

func (s *Service) resolveMonth(ctx context.Context, mois string) (string, error) {
	if mois != "" {
		if _, err := time.Parse("2006-01", mois); err != nil {
			return "", fmt.Errorf("activity: invalid mois %q", mois)
		}
		return mois, nil
	}
	maxDate, err := s.sales.MaxInvoiceDate(ctx)
	if err != nil {
		return "", err
	}
	if maxDate == "" {
		return time.Now().UTC().Format("2006-01"), nil
	}
	return normalize.MonthOf(maxDate), nil
}

func (s *Service) build(ctx context.Context, mois string) (Report, error) {
	target, err := time.Parse("2006-01", mois)
	if err != nil {
		return Report{}, fmt.Errorf("activity: invalid mois %q", mois)
	}
	windowStart := target.AddDate(0, -(windowMonths - 1), 0).Format("2006-01")
	m1 := target.AddDate(0, -1, 0).Format("2006-01")
	m2 := target.AddDate(0, -2, 0).Format("2006-01")

	var dimension []clients.ClientVendeur
	accs := make(map[string]*clientAcc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dimension, err = s.clients.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		return s.sales.StreamInvoices(gctx, func(page []sales.Invoice) error {
			for _, inv := range page {
				month := normalize.MonthOf(inv.DateFacture)
				if month < windowStart || month > mois {
					continue
				}
				key := sales.ByClient(inv)
				if key == "" {
					continue
				}
				acc := accs[key]
				if acc == nil {
					acc = &clientAcc{months: make(map[string]struct{})}
					accs[key] = acc
				}
				if acc.client == "" {
					acc.client = inv.Client
				}
				if acc.vendeur == "" {
					acc.vendeur = inv.Vendeur
				}
				if acc.ville == "" {
					acc.ville = inv.Ville
				}
				acc.totalHT += inv.TotalHT
				acc.commandes++
				acc.months[month] = struct{}{}
				if acc.first == "" || month < acc.first {
					acc.first = month
				}
			}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	byCode := make(map[string]clients.ClientVendeur, len(dimension))
	for _, d := range dimension {
		byCode[normalize.NormalizeCode(d.CodeClient)] = d
	}

	report := Report{Mois: mois}
	for key, acc := range accs {
		line := ClientActivity{
			CodeClient:  key,
			Client:      acc.client,
			Vendeur:     acc.vendeur,
			Ville:       acc.ville,
			TotalHT:     acc.totalHT,
			Commandes:   acc.commandes,
			PremierMois: acc.first,
			MoisActifs:  len(acc.months),
			FlagM:       flag(acc.months, mois),
			FlagM1:      flag(acc.months, m1),
			FlagM2:      flag(acc.months, m2),
		}
		if acc.commandes > 0 {
			line.MoyenneCommande = acc.totalHT / float64(acc.commandes)
		}
		if n := len(acc.months); n > 0 {
			line.MoyenneParMois = acc.totalHT / float64(n)
		}
		// The dimension wins over whatever the invoice rows carried.
		if d, ok := byCode[key]; ok {
			if d.Vendeur != "" {
				line.Vendeur = d.Vendeur
			}
			if d.Ville != "" {
				line.Ville = d.Ville
			}
			if line.Client == "" {
				line.Client = d.Societe
			}
		}
		report.Clients = append(report.Clients, line)
	}
	sort.Slice(report.Clients, func(i, j int) bool {
		return report.Clients[i].TotalHT > report.Clients[j].TotalHT
	})
	return report, nil
}

func flag(months map[string]struct{}, m string) string {
	if _, ok := months[m]; ok {
		return FlagPositif
	}
	return FlagNegatif
}
