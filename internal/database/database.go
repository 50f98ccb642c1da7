package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "modernc.org/sqlite"             // sqlite driver
)

// Store wraps the backend selected at startup: a pgxpool.Pool for postgres,
// a sqlx.DB for sqlite and mysql.
type Store struct {
	Driver string
	Pool   *pgxpool.Pool
	DB     *sqlx.DB
}

// Open connects to the configured backend and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parsing database URL: %w", err)
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("creating connection pool: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("pinging database: %w", err)
		}

		return &Store{Driver: driver, Pool: pool}, nil

	case "sqlite", "mysql":
		switch driver {
		case "sqlite":
			dsn = withSQLiteTimeFormat(dsn)
		case "mysql":
			dsn = withParseTime(dsn)
		}

		db, err := sqlx.ConnectContext(ctx, driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("connecting to %s: %w", driver, err)
		}

		if driver == "sqlite" {
			// Single writer; avoids SQLITE_BUSY under concurrent handlers.
			db.SetMaxOpenConns(1)
		}

		return &Store{Driver: driver, DB: db}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// withSQLiteTimeFormat ensures time.Time values are bound in a format
// sqlite's date functions can parse. Without it the driver stores Go's
// String() representation, which date() silently treats as NULL.
func withSQLiteTimeFormat(dsn string) string {
	if strings.Contains(dsn, "_time_format=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_time_format=sqlite"
}

// withParseTime ensures the mysql DSN scans DATETIME columns into time.Time.
func withParseTime(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "parseTime=true"
}

// Close closes the underlying connection pool.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if s.Pool != nil {
		return s.Pool.Ping(ctx)
	}
	return s.DB.PingContext(ctx)
}

// EnsureSchema creates the teams and admin_users tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(s.Driver) {
		var err error
		if s.Pool != nil {
			_, err = s.Pool.Exec(ctx, stmt)
		} else {
			_, err = s.DB.ExecContext(ctx, stmt)
		}
		if err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}

func schemaStatements(driver string) []string {
	switch driver {
	case "postgres":
		return []string{
			`CREATE TABLE IF NOT EXISTS teams (
				id INTEGER PRIMARY KEY,
				team_name VARCHAR(100) NOT NULL UNIQUE,
				student1_name VARCHAR(100) NOT NULL,
				student1_regno VARCHAR(20) NOT NULL UNIQUE,
				student2_name VARCHAR(100) NOT NULL,
				student2_regno VARCHAR(20) NOT NULL UNIQUE,
				year VARCHAR(20) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS admin_users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(50) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				last_login TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		}
	case "mysql":
		return []string{
			`CREATE TABLE IF NOT EXISTS teams (
				id INT PRIMARY KEY,
				team_name VARCHAR(100) NOT NULL UNIQUE,
				student1_name VARCHAR(100) NOT NULL,
				student1_regno VARCHAR(20) NOT NULL UNIQUE,
				student2_name VARCHAR(100) NOT NULL,
				student2_regno VARCHAR(20) NOT NULL UNIQUE,
				year VARCHAR(20) NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS admin_users (
				id INT AUTO_INCREMENT PRIMARY KEY,
				username VARCHAR(50) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				last_login DATETIME,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		}
	default: // sqlite
		return []string{
			`CREATE TABLE IF NOT EXISTS teams (
				id INTEGER PRIMARY KEY,
				team_name TEXT NOT NULL UNIQUE,
				student1_name TEXT NOT NULL,
				student1_regno TEXT NOT NULL UNIQUE,
				student2_name TEXT NOT NULL,
				student2_regno TEXT NOT NULL UNIQUE,
				year TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS admin_users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				last_login TIMESTAMP,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		}
	}
}
