package validation

import "strings"

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Username string
	Password string
}

// ValidateLogin validates the fields of an admin login request.
func ValidateLogin(req LoginRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "Username is required"})
	}

	if req.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	} else if len(req.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}

	return errs
}
