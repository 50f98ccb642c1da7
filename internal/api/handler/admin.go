package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arenax6/registration/internal/api/middleware"
	"github.com/arenax6/registration/internal/api/response"
	"github.com/arenax6/registration/internal/api/validation"
	"github.com/arenax6/registration/internal/auth"
	"github.com/arenax6/registration/internal/export"
	"github.com/arenax6/registration/internal/team"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Admin   adminInfo `json:"admin"`
}

type adminInfo struct {
	Username string `json:"username"`
}

type teamItem struct {
	ID            int    `json:"id"`
	TeamName      string `json:"team_name"`
	Student1Name  string `json:"student1_name"`
	Student1RegNo string `json:"student1_regno"`
	Student2Name  string `json:"student2_name"`
	Student2RegNo string `json:"student2_regno"`
	Year          string `json:"year"`
	CreatedAt     string `json:"created_at"`
}

type teamsResponse struct {
	Success    bool            `json:"success"`
	Teams      []teamItem      `json:"teams"`
	Pagination team.Pagination `json:"pagination"`
}

type statsResponse struct {
	Success bool        `json:"success"`
	Stats   *team.Stats `json:"stats"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toTeamItem(t *team.Team) teamItem {
	return teamItem{
		ID:            t.ID,
		TeamName:      t.TeamName,
		Student1Name:  t.Student1Name,
		Student1RegNo: t.Student1RegNo,
		Student2Name:  t.Student2Name,
		Student2RegNo: t.Student2RegNo,
		Year:          t.Year,
		CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// AdminHandler handles admin authentication and team management endpoints.
type AdminHandler struct {
	authSvc *auth.Service
	teamSvc *team.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authSvc *auth.Service, teamSvc *team.Service) *AdminHandler {
	return &AdminHandler{authSvc: authSvc, teamSvc: teamSvc}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if fieldErrors := validation.ValidateLogin(validation.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}); len(fieldErrors) > 0 {
		response.ErrWithFields(w, http.StatusBadRequest, "Validation failed", fieldErrors)
		return
	}

	token, admin, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Err(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		slog.Error("login failed", "error", err)
		response.Err(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful!",
		Token:   token,
		Admin:   adminInfo{Username: admin.Username},
	})
}

// ListTeams handles GET /admin/teams.
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	q := team.ListQuery{
		Search: r.URL.Query().Get("search"),
		Year:   r.URL.Query().Get("year"),
		Page:   intQueryParam(r, "page", 1),
		Limit:  intQueryParam(r, "limit", 20),
	}

	teams, pagination, err := h.teamSvc.List(r.Context(), q)
	if err != nil {
		slog.Error("failed to list teams", "error", err)
		response.Err(w, http.StatusInternalServerError, "Error fetching teams data")
		return
	}

	items := make([]teamItem, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamItem(&teams[i]))
	}

	response.JSON(w, http.StatusOK, teamsResponse{
		Success:    true,
		Teams:      items,
		Pagination: pagination,
	})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.teamSvc.Stats(r.Context())
	if err != nil {
		slog.Error("failed to fetch stats", "error", err)
		response.Err(w, http.StatusInternalServerError, "Error fetching statistics")
		return
	}

	response.JSON(w, http.StatusOK, statsResponse{Success: true, Stats: stats})
}

// DeleteTeam handles DELETE /admin/teams/{id}.
func (h *AdminHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		response.Err(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	name, err := h.teamSvc.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "Team not found")
			return
		}
		slog.Error("failed to delete team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "Error deleting team")
		return
	}

	if admin := middleware.GetAdmin(r.Context()); admin != nil {
		slog.Info("team deleted by admin", "team", name, "id", id, "admin", admin.Username)
	}

	response.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Team deleted successfully"})
}

// ExportExcel handles GET /admin/export-excel.
func (h *AdminHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamSvc.All(r.Context())
	if err != nil {
		slog.Error("failed to load teams for export", "error", err)
		response.Err(w, http.StatusInternalServerError, "Error generating Excel file")
		return
	}

	if len(teams) == 0 {
		response.Err(w, http.StatusNotFound, "No registrations found to export")
		return
	}

	report, err := export.Generate(teams)
	if err != nil {
		slog.Error("failed to generate excel report", "error", err)
		response.Err(w, http.StatusInternalServerError, "Error generating Excel file")
		return
	}

	if admin := middleware.GetAdmin(r.Context()); admin != nil {
		slog.Info("excel exported", "teams", len(teams), "admin", admin.Username)
	}

	filename := fmt.Sprintf("ARENA_X6_Registrations_%s.xlsx", time.Now().Format("02-01-2006"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report); err != nil {
		slog.Error("failed to write excel response", "error", err)
	}
}

// Logout handles POST /admin/logout. Tokens are stateless; the client simply
// discards its copy.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if admin := middleware.GetAdmin(r.Context()); admin != nil {
		slog.Info("admin logout", "admin", admin.Username)
	}

	response.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
