package ebe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Repository defines persistence for the monthly inputs.
type Repository interface {
	FindByMonth(ctx context.Context, month string) (*Monthly, error)
	ListAll(ctx context.Context) ([]Monthly, error)
	Insert(ctx context.Context, m Monthly) error
	Update(ctx context.Context, m Monthly) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByMonth fetches one month's inputs.
func (r *PGRepository) FindByMonth(ctx context.Context, month string) (*Monthly, error) {
	if r == nil || r.pool == nil {
		return nil, fmt.Errorf("ebe repo not initialised")
	}
	const query = `
		SELECT to_char(month, 'YYYY-MM-DD'), turnover, purchases, external_charges, salaries, production_taxes
		FROM monthly_ebe WHERE month = $1`
	var m Monthly
	err := r.pool.QueryRow(ctx, query, month).Scan(&m.Month, &m.Turnover, &m.Purchases, &m.ExternalCharges, &m.Salaries, &m.ProductionTaxes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListAll returns the history sorted by month.
func (r *PGRepository) ListAll(ctx context.Context) ([]Monthly, error) {
	if r == nil || r.pool == nil {
		return nil, fmt.Errorf("ebe repo not initialised")
	}
	const query = `
		SELECT to_char(month, 'YYYY-MM-DD'), turnover, purchases, external_charges, salaries, production_taxes
		FROM monthly_ebe ORDER BY month`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Monthly
	for rows.Next() {
		var m Monthly
		if err := rows.Scan(&m.Month, &m.Turnover, &m.Purchases, &m.ExternalCharges, &m.Salaries, &m.ProductionTaxes); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Insert adds a new month.
func (r *PGRepository) Insert(ctx context.Context, m Monthly) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("ebe repo not initialised")
	}
	const query = `
		INSERT INTO monthly_ebe (month, turnover, purchases, external_charges, salaries, production_taxes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, m.Month, m.Turnover, m.Purchases, m.ExternalCharges, m.Salaries, m.ProductionTaxes)
	return httpx.MapDBError(err)
}

// Update overwrites an existing month.
func (r *PGRepository) Update(ctx context.Context, m Monthly) error {
	if r == nil || r.pool == nil {
		return fmt.Errorf("ebe repo not initialised")
	}
	const query = `
		UPDATE monthly_ebe SET turnover = $2, purchases = $3, external_charges = $4, salaries = $5, production_taxes = $6
		WHERE month = $1`
	tag, err := r.pool.Exec(ctx, query, m.Month, m.Turnover, m.Purchases, m.ExternalCharges, m.Salaries, m.ProductionTaxes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
