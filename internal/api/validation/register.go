package validation

import (
	"regexp"
	"strings"

	"github.com/arenax6/registration/internal/team"
)

var (
	teamNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s-]+$`)
	nameRegex     = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	regNoRegex    = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegistrationRequest mirrors the fields of a registration submission.
// Values are expected to be trimmed by the caller.
type RegistrationRequest struct {
	TeamName      string
	Student1Name  string
	Student1RegNo string
	Student2Name  string
	Student2RegNo string
	Year          string
}

// ValidateRegistration validates the fields of a registration request.
// Returns a slice of field errors; empty slice means valid.
func ValidateRegistration(req RegistrationRequest) []FieldError {
	var errs []FieldError

	errs = appendTeamNameErrors(errs, req.TeamName)
	errs = appendStudentErrors(errs, "student1_name", "Student 1", req.Student1Name)
	errs = appendRegNoErrors(errs, "student1_regno", "Student 1", req.Student1RegNo)
	errs = appendStudentErrors(errs, "student2_name", "Student 2", req.Student2Name)
	errs = appendRegNoErrors(errs, "student2_regno", "Student 2", req.Student2RegNo)

	if req.Student1RegNo != "" && req.Student1RegNo == req.Student2RegNo {
		errs = append(errs, FieldError{
			Field:   "student2_regno",
			Message: "Student 2 registration number must be different from Student 1",
		})
	}

	if req.Year == "" {
		errs = append(errs, FieldError{Field: "year", Message: "Academic year is required"})
	} else if !team.ValidYear(req.Year) {
		errs = append(errs, FieldError{Field: "year", Message: "Invalid year selection"})
	}

	return errs
}

func appendTeamNameErrors(errs []FieldError, name string) []FieldError {
	switch {
	case name == "":
		errs = append(errs, FieldError{Field: "team_name", Message: "Team name is required"})
	case len(name) < 3 || len(name) > 100:
		errs = append(errs, FieldError{Field: "team_name", Message: "Team name must be between 3 and 100 characters"})
	case !teamNameRegex.MatchString(name):
		errs = append(errs, FieldError{Field: "team_name", Message: "Team name can only contain letters, numbers, spaces, and hyphens"})
	}
	return errs
}

func appendStudentErrors(errs []FieldError, field, label, name string) []FieldError {
	switch {
	case name == "":
		errs = append(errs, FieldError{Field: field, Message: label + " name is required"})
	case len(name) < 2 || len(name) > 100:
		errs = append(errs, FieldError{Field: field, Message: "Name must be between 2 and 100 characters"})
	case !nameRegex.MatchString(name):
		errs = append(errs, FieldError{Field: field, Message: "Name can only contain letters and spaces"})
	}
	return errs
}

func appendRegNoErrors(errs []FieldError, field, label, regno string) []FieldError {
	switch {
	case regno == "":
		errs = append(errs, FieldError{Field: field, Message: label + " registration number is required"})
	case len(regno) < 5 || len(regno) > 20:
		errs = append(errs, FieldError{Field: field, Message: "Registration number must be between 5 and 20 characters"})
	case !regNoRegex.MatchString(regno):
		errs = append(errs, FieldError{Field: field, Message: "Registration number must be uppercase alphanumeric"})
	}
	return errs
}

// TrimSpace trims every field of a registration request in place.
func (r *RegistrationRequest) TrimSpace() {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.Student1Name = strings.TrimSpace(r.Student1Name)
	r.Student1RegNo = strings.TrimSpace(r.Student1RegNo)
	r.Student2Name = strings.TrimSpace(r.Student2Name)
	r.Student2RegNo = strings.TrimSpace(r.Student2RegNo)
	r.Year = strings.TrimSpace(r.Year)
}
