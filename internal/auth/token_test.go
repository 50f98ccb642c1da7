package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenax6/registration/internal/auth"
)

func TestToken_RoundTrip(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)

	signed, err := tokens.Generate(7, "admin")
	require.NoError(t, err)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestToken_Expired(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", -time.Minute)

	signed, err := tokens.Generate(7, "admin")
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestToken_Malformed(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)

	_, err := tokens.Validate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestToken_WrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := auth.NewTokenManager("secret-one", 2*time.Hour).Generate(7, "admin")
	require.NoError(t, err)

	_, err = auth.NewTokenManager("secret-two", 2*time.Hour).Validate(signed)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}
