package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// GetByUsername retrieves an admin by username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	query := `
		SELECT id, username, password_hash, last_login, created_at
		FROM admin_users
		WHERE username = $1`

	var a Admin
	err := r.pool.QueryRow(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.LastLogin, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("querying admin: %w", err)
	}

	return &a, nil
}

// UpdateLastLogin stamps last_login with the current time.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `UPDATE admin_users SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAdminNotFound
	}

	return nil
}

// Upsert inserts the admin or replaces its password hash.
func (r *PostgresRepository) Upsert(ctx context.Context, username, passwordHash string) error {
	query := `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`

	if _, err := r.pool.Exec(ctx, query, username, passwordHash); err != nil {
		return fmt.Errorf("upserting admin: %w", err)
	}

	return nil
}
