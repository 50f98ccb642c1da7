package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody is the wire format for failed requests. Every error response
// carries success=false and a human-readable message; validation failures add
// a field-error list for form re-rendering.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Err writes a failure response with the given message.
func Err(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Success: false, Message: message})
}

// ErrWithFields writes a failure response carrying field-level errors.
func ErrWithFields(w http.ResponseWriter, status int, message string, fields any) {
	JSON(w, status, errorBody{Success: false, Message: message, Errors: fields})
}
