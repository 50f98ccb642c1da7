package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLRepository implements Repository on database/sql via sqlx, serving the
// sqlite and mysql backends.
type SQLRepository struct {
	db     *sqlx.DB
	driver string
}

// NewSQLRepository creates a Repository backed by the given sqlx handle.
// driver is "sqlite" or "mysql".
func NewSQLRepository(db *sqlx.DB, driver string) Repository {
	return &SQLRepository{db: db, driver: driver}
}

// GetByUsername retrieves an admin by username.
func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	var a Admin
	query := r.db.Rebind(`
		SELECT id, username, password_hash, last_login, created_at
		FROM admin_users
		WHERE username = ?`)

	err := r.db.GetContext(ctx, &a, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("querying admin: %w", err)
	}

	return &a, nil
}

// UpdateLastLogin stamps last_login with the current time.
func (r *SQLRepository) UpdateLastLogin(ctx context.Context, id int) error {
	query := r.db.Rebind(`UPDATE admin_users SET last_login = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if affected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

// Upsert inserts the admin or replaces its password hash.
func (r *SQLRepository) Upsert(ctx context.Context, username, passwordHash string) error {
	var query string
	switch r.driver {
	case "mysql":
		query = `
			INSERT INTO admin_users (username, password_hash)
			VALUES (?, ?)
			ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash)`
	default:
		query = `
			INSERT INTO admin_users (username, password_hash)
			VALUES (?, ?)
			ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash`
	}

	if _, err := r.db.ExecContext(ctx, query, username, passwordHash); err != nil {
		return fmt.Errorf("upserting admin: %w", err)
	}

	return nil
}
