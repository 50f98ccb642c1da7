package auth

import "time"

// Admin represents a row in the admin_users table. Admin accounts are created
// out-of-band by the createadmin tool, never through the API.
type Admin struct {
	ID           int        `db:"id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	LastLogin    *time.Time `db:"last_login"`
	CreatedAt    time.Time  `db:"created_at"`
}
