package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/arenax6/registration/internal/api/handler"
	"github.com/arenax6/registration/internal/api/middleware"
	"github.com/arenax6/registration/internal/auth"
	"github.com/arenax6/registration/internal/team"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	TeamService *team.Service
	AuthService *auth.Service
	Tokens      *auth.TokenManager
	Pinger      handler.Pinger
	Version     string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.Pinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	registerHandler := handler.NewRegisterHandler(deps.TeamService)
	r.Route("/register", func(r chi.Router) {
		r.Post("/", registerHandler.Register)
		r.Get("/check-team-name/{name}", registerHandler.CheckTeamName)
	})

	adminHandler := handler.NewAdminHandler(deps.AuthService, deps.TeamService)
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Tokens))
			r.Get("/teams", adminHandler.ListTeams)
			r.Delete("/teams/{id}", adminHandler.DeleteTeam)
			r.Get("/stats", adminHandler.Stats)
			r.Get("/export-excel", adminHandler.ExportExcel)
			r.Post("/logout", adminHandler.Logout)
		})
	})

	return r
}
