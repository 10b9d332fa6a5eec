package clients

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetchef/sc-dashboard/internal/platform/db"
)

// Repository defines persistence for the client dimension.
type Repository interface {
	ReplaceAll(ctx context.Context, rows []ClientVendeur) (int64, error)
	ListAll(ctx context.Context) ([]ClientVendeur, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ReplaceAll swaps the whole dimension inside one transaction, so
// readers never observe a half empty table.
func (r *PGRepository) ReplaceAll(ctx context.Context, rows []ClientVendeur) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, fmt.Errorf("clients repo not initialised")
	}
	var inserted int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM client_vendeur`); err != nil {
			return err
		}
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"client_vendeur"},
			[]string{"code_client", "societe", "nom", "prenom", "groupe", "code_postal", "ville", "vendeur"},
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				row := rows[i]
				return []any{row.CodeClient, row.Societe, row.Nom, row.Prenom, row.Groupe, row.CodePostal, row.Ville, row.Vendeur}, nil
			}),
		)
		if err != nil {
			return err
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListAll returns the full dimension ordered by client code.
func (r *PGRepository) ListAll(ctx context.Context) ([]ClientVendeur, error) {
	if r == nil || r.pool == nil {
		return nil, fmt.Errorf("clients repo not initialised")
	}
	const query = `
		SELECT code_client, societe, nom, prenom, groupe, code_postal, ville, vendeur
		FROM client_vendeur
		ORDER BY code_client`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClientVendeur
	for rows.Next() {
		var row ClientVendeur
		if err := rows.Scan(&row.CodeClient, &row.Societe, &row.Nom, &row.Prenom, &row.Groupe, &row.CodePostal, &row.Ville, &row.Vendeur); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
