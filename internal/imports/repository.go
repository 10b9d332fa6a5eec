package imports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetchef/sc-dashboard/internal/platform/db"
	"github.com/sweetchef/sc-dashboard/internal/sales"
)

// Repository persists imported rows and the batch archive.
type Repository interface {
	InsertSales(ctx context.Context, table string, rows []sales.Invoice) (int, error)
	ArchiveBatch(ctx context.Context, batchID, category, filename string, rows []Row) error
	CountSalesClean(ctx context.Context) (int64, error)
}

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const insertChunkSize = 1000

var salesColumns = []string{
	"date_facture", "code_client", "client", "vendeur", "ville",
	"code_postal", "total_ht", "total_ttc", "num_facture",
}

// InsertSales bulk-loads invoices into sales or sales_clean in chunks,
// inside one transaction so a failed upload leaves nothing behind.
func (r *PGRepository) InsertSales(ctx context.Context, table string, rows []sales.Invoice) (int, error) {
	if table != CategorySales && table != CategorySalesClean {
		return 0, fmt.Errorf("insert sales: unknown table %q", table)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	inserted := 0
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for start := 0; start < len(rows); start += insertChunkSize {
			end := min(start+insertChunkSize, len(rows))
			chunk := rows[start:end]
			n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, salesColumns,
				pgx.CopyFromSlice(len(chunk), func(i int) ([]any, error) {
					inv := chunk[i]
					return []any{
						inv.DateFacture, inv.CodeClient, inv.Client, inv.Vendeur,
						inv.Ville, inv.CodePostal, inv.TotalHT, inv.TotalTTC, inv.NumFacture,
					}, nil
				}))
			if err != nil {
				return fmt.Errorf("copy into %s: %w", table, err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert sales: %w", err)
	}
	return inserted, nil
}

// ArchiveBatch stores the raw upload alongside its metadata so a bad
// import can be replayed or audited.
func (r *PGRepository) ArchiveBatch(ctx context.Context, batchID, category, filename string, rows []Row) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("archive batch: marshal: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO imports (batch_id, category, filename, row_count, raw_rows)
		VALUES ($1, $2, $3, $4, $5)`,
		batchID, category, filename, len(rows), raw)
	if err != nil {
		return fmt.Errorf("archive batch: %w", err)
	}
	return nil
}

func (r *PGRepository) CountSalesClean(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM sales_clean`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
