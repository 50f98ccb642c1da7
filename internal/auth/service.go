package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the username is unknown or the
// password does not match. Callers must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service provides admin authentication operations.
type Service struct {
	repo       Repository
	tokens     *TokenManager
	bcryptCost int
}

// NewService creates a new auth Service.
func NewService(repo Repository, tokens *TokenManager, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Login verifies the credentials, stamps last_login and issues a session
// token for the admin.
func (s *Service) Login(ctx context.Context, username, password string) (string, *Admin, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("looking up admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, admin.ID); err != nil {
		return "", nil, fmt.Errorf("updating last login: %w", err)
	}

	token, err := s.tokens.Generate(admin.ID, admin.Username)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}

	slog.Info("admin login successful", "username", admin.Username)

	return token, admin, nil
}

// CreateAdmin hashes the password and inserts or updates the admin row. Used
// by the bootstrap tool, not exposed over HTTP.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.repo.Upsert(ctx, username, string(hash)); err != nil {
		return err
	}

	return nil
}
