// Command createadmin bootstraps an admin account. Admin users are never
// created through the API; run this out-of-band against the configured store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arenax6/registration/internal/auth"
	"github.com/arenax6/registration/internal/config"
	"github.com/arenax6/registration/internal/database"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (min 6 characters)")
	flag.Parse()

	if len(*password) < 6 {
		fmt.Fprintln(os.Stderr, "usage: createadmin -username <name> -password <password>")
		fmt.Fprintln(os.Stderr, "password must be at least 6 characters")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := database.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	var repo auth.Repository
	if store.Driver == "postgres" {
		repo = auth.NewPostgresRepository(store.Pool)
	} else {
		repo = auth.NewSQLRepository(store.DB, store.Driver)
	}

	svc := auth.NewService(repo, nil, cfg.BcryptCost)
	if err := svc.CreateAdmin(ctx, *username, *password); err != nil {
		slog.Error("failed to create admin", "error", err)
		os.Exit(1)
	}

	fmt.Printf("admin %q created\n", *username)
}
