package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
//
// DATABASE_URL depends on STORE_DRIVER:
//   - sqlite:   a file path or "file:" URI, e.g. "file:arena.db"
//   - postgres: a pgx connection URL
//   - mysql:    a go-sql-driver DSN; parseTime=true is appended automatically
type Config struct {
	Port        int           `envconfig:"PORT" default:"8080"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	StoreDriver string        `envconfig:"STORE_DRIVER" default:"sqlite"`
	DatabaseURL string        `envconfig:"DATABASE_URL" default:"file:arena.db"`
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"2h"`
	BcryptCost  int           `envconfig:"BCRYPT_COST" default:"12"`
	Version     string        `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (want sqlite, postgres or mysql)", cfg.StoreDriver)
	}

	return &cfg, nil
}
