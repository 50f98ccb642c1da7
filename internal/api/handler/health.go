package handler

import (
	"context"
	"net/http"

	"github.com/arenax6/registration/internal/api/response"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	pinger  Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pinger Pinger, version string) *HealthHandler {
	return &HealthHandler{pinger: pinger, version: version}
}

type databaseStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Success  bool           `json:"success"`
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Database databaseStatus `json:"database"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	connected := true

	if err := h.pinger.Ping(r.Context()); err != nil {
		status = "degraded"
		connected = false
	}

	response.JSON(w, http.StatusOK, healthData{
		Success:  true,
		Status:   status,
		Version:  h.version,
		Database: databaseStatus{Connected: connected},
	})
}
