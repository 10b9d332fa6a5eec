package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweetchef/sc-dashboard/internal/platform/httpx"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindAdminByLogin(ctx context.Context, login string) (*Admin, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindAdminByLogin fetches the admin account record.
func (r *PGRepository) FindAdminByLogin(ctx context.Context, login string) (*Admin, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admins WHERE login = $1`
	var admin Admin
	err := r.pool.QueryRow(ctx, query, login).Scan(&admin.ID, &admin.Login, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

var _ Repository = (*PGRepository)(nil)
