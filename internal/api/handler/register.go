package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/arenax6/registration/internal/api/response"
	"github.com/arenax6/registration/internal/api/validation"
	"github.com/arenax6/registration/internal/team"
)

type registerRequest struct {
	TeamName      string `json:"team_name"`
	Student1Name  string `json:"student1_name"`
	Student1RegNo string `json:"student1_regno"`
	Student2Name  string `json:"student2_name"`
	Student2RegNo string `json:"student2_regno"`
	Year          string `json:"year"`
}

type registerResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
}

type availabilityResponse struct {
	Success   bool `json:"success"`
	Available bool `json:"available"`
}

// RegisterHandler handles the public registration endpoints.
type RegisterHandler struct {
	svc *team.Service
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc *team.Service) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Register handles POST /register.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	fields := validation.RegistrationRequest{
		TeamName:      req.TeamName,
		Student1Name:  req.Student1Name,
		Student1RegNo: req.Student1RegNo,
		Student2Name:  req.Student2Name,
		Student2RegNo: req.Student2RegNo,
		Year:          req.Year,
	}
	fields.TrimSpace()

	if fieldErrors := validation.ValidateRegistration(fields); len(fieldErrors) > 0 {
		response.ErrWithFields(w, http.StatusBadRequest, "Validation failed", fieldErrors)
		return
	}

	t := &team.Team{
		TeamName:      fields.TeamName,
		Student1Name:  fields.Student1Name,
		Student1RegNo: fields.Student1RegNo,
		Student2Name:  fields.Student2Name,
		Student2RegNo: fields.Student2RegNo,
		Year:          fields.Year,
	}

	if err := h.svc.Register(r.Context(), t); err != nil {
		var dupName *team.DuplicateTeamNameError
		if errors.As(err, &dupName) {
			response.Err(w, http.StatusBadRequest, "Team name already exists. Please choose a different name.")
			return
		}

		var dupRegNo *team.DuplicateRegNoError
		if errors.As(err, &dupRegNo) {
			msg := fmt.Sprintf("Registration number %s is already registered in team %q. This member is already on another team.",
				dupRegNo.RegNo, dupRegNo.TeamName)
			response.Err(w, http.StatusBadRequest, msg)
			return
		}

		slog.Error("registration failed", "error", err, "team", fields.TeamName)
		response.Err(w, http.StatusInternalServerError, "Server error during registration. Please try again later.")
		return
	}

	response.JSON(w, http.StatusCreated, registerResponse{
		Success:  true,
		Message:  "Registration successful! Welcome to ARENA X6!",
		TeamID:   t.ID,
		TeamName: t.TeamName,
	})
}

// CheckTeamName handles GET /register/check-team-name/{name}.
func (h *RegisterHandler) CheckTeamName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	available, err := h.svc.NameAvailable(r.Context(), name)
	if err != nil {
		slog.Error("team name check failed", "error", err)
		response.Err(w, http.StatusInternalServerError, "Error checking team name availability")
		return
	}

	response.JSON(w, http.StatusOK, availabilityResponse{Success: true, Available: available})
}
