package users

import (
	"context"
	"strings"
	"time"

	"github.com/crossingbook/crossingbook/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Service encapsulates account business logic (registration, authentication).
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Register creates a new account. Usernames are lowercased before the
// duplicate check and before storage. The pre-check produces the friendly
// conflict error; the unique index closes the remaining race window.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:  username,
		Password:  string(hash),
		Role:      models.RoleMember,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, u)
}

// Authenticate verifies a username/password pair. Both the unknown-username
// and wrong-password paths return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByUsername returns the user or nil when absent.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetByUsername(ctx, strings.ToLower(username))
}
