package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenax6/registration/internal/api/middleware"
	"github.com/arenax6/registration/internal/auth"
)

func authedRequest(t *testing.T, tokens *auth.TokenManager, header string) *httptest.ResponseRecorder {
	t.Helper()

	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = middleware.GetAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/teams", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()

	middleware.Auth(tokens)(next).ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		require.NotNil(t, gotClaims)
	}
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)
	signed, err := tokens.Generate(1, "admin")
	require.NoError(t, err)

	w := authedRequest(t, tokens, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)

	w := authedRequest(t, tokens, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_NotBearer(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)

	w := authedRequest(t, tokens, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", -time.Minute)
	signed, err := tokens.Generate(1, "admin")
	require.NoError(t, err)

	w := authedRequest(t, auth.NewTokenManager("test-secret", 2*time.Hour), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)

	w := authedRequest(t, tokens, "Bearer garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_WrongSignature(t *testing.T) {
	t.Parallel()

	signed, err := auth.NewTokenManager("other-secret", 2*time.Hour).Generate(1, "admin")
	require.NoError(t, err)

	w := authedRequest(t, auth.NewTokenManager("test-secret", 2*time.Hour), "Bearer "+signed)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAdmin_ClaimsInContext(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)
	signed, err := tokens.Generate(7, "admin")
	require.NoError(t, err)

	var claims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims = middleware.GetAdmin(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	middleware.Auth(tokens)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, claims)
	assert.Equal(t, 7, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
}
