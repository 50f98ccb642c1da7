package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arenax6/registration/internal/api"
	"github.com/arenax6/registration/internal/auth"
	"github.com/arenax6/registration/internal/config"
	"github.com/arenax6/registration/internal/database"
	"github.com/arenax6/registration/internal/team"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	err = store.EnsureSchema(ctx)
	cancel()
	if err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	teamRepo, adminRepo := buildRepositories(store)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	router := api.NewRouter(api.RouterDeps{
		TeamService: team.NewService(teamRepo),
		AuthService: auth.NewService(adminRepo, tokens, cfg.BcryptCost),
		Tokens:      tokens,
		Pinger:      store,
		Version:     cfg.Version,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting registration server", "port", cfg.Port, "driver", cfg.StoreDriver, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func buildRepositories(store *database.Store) (team.Repository, auth.Repository) {
	if store.Driver == "postgres" {
		return team.NewPostgresRepository(store.Pool), auth.NewPostgresRepository(store.Pool)
	}
	return team.NewSQLRepository(store.DB, store.Driver), auth.NewSQLRepository(store.DB, store.Driver)
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
