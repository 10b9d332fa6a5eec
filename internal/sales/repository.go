package sales

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetchef/sc-dashboard/internal/normalize"
)

// Repository exposes the row streams and view maintenance the reports
// are built on.
type Repository interface {
	StreamInvoices(ctx context.Context, fn func([]Invoice) error) error
	StreamVenteVendeur(ctx context.Context, mois string, fn func([]VenteRow) error) error
	RefreshVenteVendeur(ctx context.Context) error
	MaxInvoiceDate(ctx context.Context) (string, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const invoicePageQuery = `
	SELECT id, to_char(date_facture, 'YYYY-MM-DD'), code_client, client, vendeur,
	       ville, code_postal, total_ht, total_ttc, num_facture
	FROM sales
	ORDER BY id
	LIMIT $1 OFFSET $2`

// StreamInvoices walks the sales table in pages of 1000.
func (r *PGRepository) StreamInvoices(ctx context.Context, fn func([]Invoice) error) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("sales repo not initialised")
	}
	return streamPages(ctx, r.fetchInvoicePage, fn)
}

func (r *PGRepository) fetchInvoicePage(ctx context.Context, limit, offset int) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, invoicePageQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := make([]Invoice, 0, limit)
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.DateFacture, &inv.CodeClient, &inv.Client, &inv.Vendeur,
			&inv.Ville, &inv.CodePostal, &inv.TotalHT, &inv.TotalTTC, &inv.NumFacture); err != nil {
			return nil, err
		}
		page = append(page, inv)
	}
	return page, rows.Err()
}

const ventePageQuery = `
	SELECT vendeur, mois, code_client, client, ville, commandes, total_ht, total_ttc
	FROM vente_vendeur
	WHERE ($3 = '' OR mois = $3)
	ORDER BY vendeur, code_client
	LIMIT $1 OFFSET $2`

// StreamVenteVendeur walks the denormalized view, optionally filtered
// to one month.
func (r *PGRepository) StreamVenteVendeur(ctx context.Context, mois string, fn func([]VenteRow) error) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("sales repo not initialised")
	}
	fetch := func(ctx context.Context, limit, offset int) ([]VenteRow, error) {
		rows, err := r.pool.Query(ctx, ventePageQuery, limit, offset, mois)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		page := make([]VenteRow, 0, limit)
		for rows.Next() {
			var row VenteRow
			if err := rows.Scan(&row.Vendeur, &row.Mois, &row.CodeClient, &row.Client, &row.Ville,
				&row.Commandes, &row.TotalHT, &row.TotalTTC); err != nil {
				return nil, err
			}
			page = append(page, row)
		}
		return page, rows.Err()
	}
	return streamPages(ctx, fetch, fn)
}

// RefreshVenteVendeur rebuilds the view table from the vendor-attributed
// sales inside one transaction. The operation is idempotent but carries
// no concurrency guard: it is triggered by an administrator button and
// the nightly job.
func (r *PGRepository) RefreshVenteVendeur(ctx context.Context) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("sales repo not initialised")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM vente_vendeur`); err != nil {
		return err
	}
	const rebuild = `
		INSERT INTO vente_vendeur (vendeur, mois, code_client, client, ville, commandes, total_ht, total_ttc)
		SELECT btrim(vendeur),
		       to_char(date_facture, 'YYYY-MM'),
		       upper(btrim(code_client)),
		       max(client),
		       max(ville),
		       count(*),
		       sum(total_ht),
		       sum(total_ttc)
		FROM sales_clean
		WHERE vendeur IS NOT NULL AND btrim(vendeur) <> ''
		GROUP BY 1, 2, 3`
	if _, err := tx.Exec(ctx, rebuild); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// MaxInvoiceDate returns the newest invoice date, empty when the table
// is empty.
func (r *PGRepository) MaxInvoiceDate(ctx context.Context) (string, error) {
	if r == nil || r.pool == nil {
		return "", fmt.Errorf("sales repo not initialised")
	}
	const query = `SELECT coalesce(to_char(max(date_facture), 'YYYY-MM-DD'), '') FROM sales`
	var day string
	if err := r.pool.QueryRow(ctx, query).Scan(&day); err != nil {
		return "", err
	}
	if day != "" && normalize.MonthOf(day) == "" {
		return "", fmt.Errorf("sales: unexpected max date %q", day)
	}
	return day, nil
}

var _ Repository = (*PGRepository)(nil)
