package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/arenax6/registration/internal/api/response"
	"github.com/arenax6/registration/internal/auth"
)

const adminKey contextKey = "admin"

// Auth is middleware that validates the bearer token on protected admin
// routes. Missing or expired tokens return 401; malformed tokens or bad
// signatures return 403.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Err(w, http.StatusUnauthorized, "Access denied. No authentication token provided.")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					response.Err(w, http.StatusUnauthorized, "Token expired. Please login again.")
					return
				}
				response.Err(w, http.StatusForbidden, "Invalid or malformed token.")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin retrieves the authenticated admin claims from the request context.
func GetAdmin(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(adminKey).(*auth.Claims); ok {
		return c
	}
	return nil
}
