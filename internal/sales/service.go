package sales

import (
	"context"
	"fmt"
	"sort"

	"github.com/sweetchef/sc-dashboard/internal/clients"
	"github.com/sweetchef/sc-dashboard/internal/normalize"
	"github.com/sweetchef/sc-dashboard/internal/platform/cache"
)

// Service prepares the report payloads, with a Redis cache in front of
// the heavier row streams.
type Service struct {
	repo    Repository
	clients clients.Repository
	cache   *cache.Cache
}

// NewService constructs a Service.
func NewService(repo Repository, clientRepo clients.Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, clients: clientRepo, cache: c}
}

// Monthly aggregates every invoice by calendar month.
func (s *Service) Monthly(ctx context.Context) ([]Total, error) {
	key, err := s.cache.Key(ctx, "reports", "monthly")
	if err != nil {
		return nil, err
	}
	var out []Total
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		agg := NewAggregator(ByMonth)
		if err := s.repo.StreamInvoices(ctx, func(page []Invoice) error {
			agg.AddAll(page)
			return nil
		}); err != nil {
			return nil, err
		}
		return agg.Totals(), nil
	})
	return out, err
}

// Vendors sums the vente_vendeur view per salesperson for one month
// (all months when mois is empty).
func (s *Service) Vendors(ctx context.Context, mois string) ([]Total, error) {
	key, err := s.cache.Key(ctx, "reports", "vendors", mois)
	if err != nil {
		return nil, err
	}
	var out []Total
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		totals := make(map[string]*Total)
		err := s.repo.StreamVenteVendeur(ctx, mois, func(page []VenteRow) error {
			for _, row := range page {
				t := totals[row.Vendeur]
				if t == nil {
					t = &Total{Key: row.Vendeur}
					totals[row.Vendeur] = t
				}
				t.Count += row.Commandes
				t.TotalHT += row.TotalHT
				t.TotalTTC += row.TotalTTC
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return sortedTotals(totals), nil
	})
	return out, err
}

// VendorDetail builds the drill-down for a single salesperson: the
// per-month series plus the clients ranked by revenue.
func (s *Service) VendorDetail(ctx context.Context, vendeur string) (VendorDetail, error) {
	wanted := normalize.NormalizeCode(vendeur)
	if wanted == "" {
		return VendorDetail{}, fmt.Errorf("sales: vendeur required")
	}
	key, err := s.cache.Key(ctx, "reports", "vendor", wanted)
	if err != nil {
		return VendorDetail{}, err
	}
	var out VendorDetail
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		detail := VendorDetail{Vendeur: vendeur}
		months := make(map[string]*Total)
		perClient := make(map[string]*Total)
		err := s.repo.StreamVenteVendeur(ctx, "", func(page []VenteRow) error {
			for _, row := range page {
				if normalize.NormalizeCode(row.Vendeur) != wanted {
					continue
				}
				detail.Commandes += row.Commandes
				detail.TotalHT += row.TotalHT
				detail.TotalTTC += row.TotalTTC

				m := months[row.Mois]
				if m == nil {
					m = &Total{Key: row.Mois}
					months[row.Mois] = m
				}
				m.Count += row.Commandes
				m.TotalHT += row.TotalHT
				m.TotalTTC += row.TotalTTC

				clientKey := row.CodeClient
				if clientKey == "" {
					clientKey = normalize.NormalizeCode(row.Client)
				}
				c := perClient[clientKey]
				if c == nil {
					c = &Total{Key: clientKey}
					perClient[clientKey] = c
				}
				c.Count += row.Commandes
				c.TotalHT += row.TotalHT
				c.TotalTTC += row.TotalTTC
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		detail.Months = sortedTotals(months)
		top := sortedTotals(perClient)
		sort.SliceStable(top, func(i, j int) bool { return top[i].TotalHT > top[j].TotalHT })
		if len(top) > 20 {
			top = top[:20]
		}
		detail.TopClients = top
		return detail, nil
	})
	return out, err
}

// Cities aggregates invoices by city, optionally for one month.
func (s *Service) Cities(ctx context.Context, mois string) ([]Total, error) {
	key, err := s.cache.Key(ctx, "reports", "city", mois)
	if err != nil {
		return nil, err
	}
	var out []Total
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		agg := NewAggregator(ByCity)
		if err := s.repo.StreamInvoices(ctx, func(page []Invoice) error {
			for _, inv := range page {
				if mois != "" && normalize.MonthOf(inv.DateFacture) != mois {
					continue
				}
				agg.Add(inv)
			}
			return nil
		}); err != nil {
			return nil, err
		}
		return agg.TotalsByAmount(), nil
	})
	return out, err
}

// KPIFamilies rolls invoices up to the client groupe from the
// client_vendeur dimension. Clients missing from the dimension land in
// the "Autres" family.
func (s *Service) KPIFamilies(ctx context.Context, mois string) ([]FamilyKPI, error) {
	key, err := s.cache.Key(ctx, "reports", "kpi_families", mois)
	if err != nil {
		return nil, err
	}
	var out []FamilyKPI
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		dimension, err := s.clients.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		groupeOf := make(map[string]string, len(dimension))
		for _, d := range dimension {
			if g := d.Groupe; g != "" {
				groupeOf[normalize.NormalizeCode(d.CodeClient)] = g
			}
		}

		type famAcc struct {
			clients   map[string]struct{}
			commandes int
			totalHT   float64
			totalTTC  float64
		}
		families := make(map[string]*famAcc)

		if err := s.repo.StreamInvoices(ctx, func(page []Invoice) error {
			for _, inv := range page {
				if mois != "" && normalize.MonthOf(inv.DateFacture) != mois {
					continue
				}
				clientKey := ByClient(inv)
				if clientKey == "" {
					continue
				}
				groupe := groupeOf[clientKey]
				if groupe == "" {
					groupe = "Autres"
				}
				f := families[groupe]
				if f == nil {
					f = &famAcc{clients: make(map[string]struct{})}
					families[groupe] = f
				}
				f.clients[clientKey] = struct{}{}
				f.commandes++
				f.totalHT += inv.TotalHT
				f.totalTTC += inv.TotalTTC
			}
			return nil
		}); err != nil {
			return nil, err
		}

		kpis := make([]FamilyKPI, 0, len(families))
		for groupe, f := range families {
			kpis = append(kpis, FamilyKPI{
				Groupe:    groupe,
				Clients:   len(f.clients),
				Commandes: f.commandes,
				TotalHT:   f.totalHT,
				TotalTTC:  f.totalTTC,
			})
		}
		sort.Slice(kpis, func(i, j int) bool { return kpis[i].TotalHT > kpis[j].TotalHT })
		return kpis, nil
	})
	return out, err
}

// VenteForMonth collects the view rows for one month, for the exports.
func (s *Service) VenteForMonth(ctx context.Context, mois string) ([]VenteRow, error) {
	if mois == "" {
		return nil, fmt.Errorf("sales: mois required")
	}
	var out []VenteRow
	err := s.repo.StreamVenteVendeur(ctx, mois, func(page []VenteRow) error {
		out = append(out, page...)
		return nil
	})
	return out, err
}

// Refresh rebuilds the vente_vendeur view and invalidates every cached
// report.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.repo.RefreshVenteVendeur(ctx); err != nil {
		return err
	}
	return s.cache.Bump(ctx)
}

func sortedTotals(m map[string]*Total) []Total {
	out := make([]Total, 0, len(m))
	for _, t := range m {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
