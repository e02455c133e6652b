package services

import (
	"context"
	"errors"

	"github.com/keyprint/authserver/internal/auth"
	"github.com/keyprint/authserver/internal/store"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (string, error)
	Insert(ctx context.Context, username, email, passwordHash string) (int64, error)
	Ping(ctx context.Context) error
}

// UserService encapsulates registration and login.
type UserService struct {
	repo   UserRepository
	hasher auth.Hasher
}

func NewUserService(repo UserRepository, hasher auth.Hasher) *UserService {
	if hasher == nil {
		hasher = auth.SHA256Hasher{}
	}
	return &UserService{repo: repo, hasher: hasher}
}

// Register hashes password and stores a new account. A taken username
// yields store.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, email, password string) (int64, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}
	return s.repo.Insert(ctx, username, email, hash)
}

// Authenticate checks password against the stored hash for username.
func (s *UserService) Authenticate(ctx context.Context, username, password string) error {
	stored, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !auth.Verify(password, stored) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *UserService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
