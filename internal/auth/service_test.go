package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arenax6/registration/internal/auth"
)

// --- Mock Repository ---

type mockAdminRepo struct {
	getByUsernameFn   func(ctx context.Context, username string) (*auth.Admin, error)
	updateLastLoginFn func(ctx context.Context, id int) error
	upsertFn          func(ctx context.Context, username, passwordHash string) error

	lastLoginUpdated bool
}

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*auth.Admin, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, auth.ErrAdminNotFound
}

func (m *mockAdminRepo) UpdateLastLogin(ctx context.Context, id int) error {
	m.lastLoginUpdated = true
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, id)
	}
	return nil
}

func (m *mockAdminRepo) Upsert(ctx context.Context, username, passwordHash string) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, username, passwordHash)
	}
	return nil
}

func adminWithPassword(t *testing.T, password string) *auth.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &auth.Admin{ID: 1, Username: "admin", PasswordHash: string(hash)}
}

func newService(repo auth.Repository) *auth.Service {
	tokens := auth.NewTokenManager("test-secret", 2*time.Hour)
	return auth.NewService(repo, tokens, bcrypt.MinCost)
}

// ===== Login =====

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	admin := adminWithPassword(t, "hunter22")
	repo := &mockAdminRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*auth.Admin, error) {
			return admin, nil
		},
	}
	svc := newService(repo)

	token, got, err := svc.Login(context.Background(), "admin", "hunter22")
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", got.Username)
	assert.True(t, repo.lastLoginUpdated)

	claims, err := auth.NewTokenManager("test-secret", 2*time.Hour).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	repo := &mockAdminRepo{}
	svc := newService(repo)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever99")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.False(t, repo.lastLoginUpdated)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	admin := adminWithPassword(t, "hunter22")
	repo := &mockAdminRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*auth.Admin, error) {
			return admin, nil
		},
	}
	svc := newService(repo)

	_, _, err := svc.Login(context.Background(), "admin", "wrongpass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.False(t, repo.lastLoginUpdated)
}

// ===== CreateAdmin =====

func TestCreateAdmin_HashesPassword(t *testing.T) {
	t.Parallel()

	var storedHash string
	repo := &mockAdminRepo{
		upsertFn: func(ctx context.Context, username, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}
	svc := newService(repo)

	err := svc.CreateAdmin(context.Background(), "admin", "hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter22")))
}
