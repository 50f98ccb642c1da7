package auth

import (
	"context"
	"errors"
)

// ErrAdminNotFound is returned when an admin record is not found.
var ErrAdminNotFound = errors.New("admin not found")

// Repository provides operations on the admin_users table.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	// UpdateLastLogin stamps last_login with the current time.
	UpdateLastLogin(ctx context.Context, id int) error
	// Upsert inserts the admin or, if the username exists, replaces its
	// password hash. Used by the bootstrap tool only.
	Upsert(ctx context.Context, username, passwordHash string) error
}
