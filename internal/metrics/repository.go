package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Repository defines persistence for the daily snapshots.
type Repository interface {
	FindByDate(ctx context.Context, date string) (*Daily, error)
	Range(ctx context.Context, from, to string) ([]Daily, error)
	Insert(ctx context.Context, d Daily) error
	Update(ctx context.Context, d Daily) error
	MaxDate(ctx context.Context) (string, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const dailyColumns = `
	to_char(date, 'YYYY-MM-DD'), revenue, order_count, margin,
	receivables_due, receivables_current, receivables,
	payables_due, payables_current, payables,
	cash_lcl, cash_coop, cash_bpmed, cash,
	stock, financial_debts`

func scanDaily(row pgx.Row) (*Daily, error) {
	var d Daily
	err := row.Scan(&d.Date, &d.Revenue, &d.OrderCount, &d.Margin,
		&d.ReceivablesDue, &d.ReceivablesCurrent, &d.Receivables,
		&d.PayablesDue, &d.PayablesCurrent, &d.Payables,
		&d.CashLCL, &d.CashCoop, &d.CashBPMED, &d.Cash,
		&d.Stock, &d.FinancialDebts)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByDate fetches one snapshot.
func (r *PGRepository) FindByDate(ctx context.Context, date string) (*Daily, error) {
	if r == nil || r.pool == nil {
		return nil, fmt.Errorf("metrics repo not initialised")
	}
	query := `SELECT` + dailyColumns + ` FROM daily_metrics WHERE date = $1`
	d, err := scanDaily(r.pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Range returns the snapshots between from and to inclusive, date sorted.
func (r *PGRepository) Range(ctx context.Context, from, to string) ([]Daily, error) {
	if r == nil || r.pool == nil {
		return nil, fmt.Errorf("metrics repo not initialised")
	}
	query := `SELECT` + dailyColumns + `
		FROM daily_metrics
		WHERE ($1 = '' OR date >= $1::date) AND ($2 = '' OR date <= $2::date)
		ORDER BY date`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Daily
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// Insert adds a snapshot for a new date.
func (r *PGRepository) Insert(ctx context.Context, d Daily) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("metrics repo not initialised")
	}
	const query = `
		INSERT INTO daily_metrics (
			date, revenue, order_count, margin,
			receivables_due, receivables_current, receivables,
			payables_due, payables_current, payables,
			cash_lcl, cash_coop, cash_bpmed, cash,
			stock, financial_debts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		d.Date, d.Revenue, d.OrderCount, d.Margin,
		d.ReceivablesDue, d.ReceivablesCurrent, d.Receivables,
		d.PayablesDue, d.PayablesCurrent, d.Payables,
		d.CashLCL, d.CashCoop, d.CashBPMED, d.Cash,
		d.Stock, d.FinancialDebts)
	return httpx.MapDBError(err)
}

// Update overwrites the snapshot for an existing date.
func (r *PGRepository) Update(ctx context.Context, d Daily) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("metrics repo not initialised")
	}
	const query = `
		UPDATE daily_metrics SET
			revenue = $2, order_count = $3, margin = $4,
			receivables_due = $5, receivables_current = $6, receivables = $7,
			payables_due = $8, payables_current = $9, payables = $10,
			cash_lcl = $11, cash_coop = $12, cash_bpmed = $13, cash = $14,
			stock = $15, financial_debts = $16
		WHERE date = $1`
	tag, err := r.pool.Exec(ctx, query,
		d.Date, d.Revenue, d.OrderCount, d.Margin,
		d.ReceivablesDue, d.ReceivablesCurrent, d.Receivables,
		d.PayablesDue, d.PayablesCurrent, d.Payables,
		d.CashLCL, d.CashCoop, d.CashBPMED, d.Cash,
		d.Stock, d.FinancialDebts)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// MaxDate returns the newest snapshot date, empty when no rows exist.
func (r *PGRepository) MaxDate(ctx context.Context) (string, error) {
	if r == nil || r.pool == nil {
		return "", fmt.Errorf("metrics repo not initialised")
	}
	const query = `SELECT coalesce(to_char(max(date), 'YYYY-MM-DD'), '') FROM daily_metrics`
	var day string
	err := r.pool.QueryRow(ctx, query).Scan(&day)
	return day, err
}

var _ Repository = (*PGRepository)(nil)
