package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codeassist/chat-gateway/internal/core/domain"
	"github.com/codeassist/chat-gateway/internal/core/ports"
)

// AuthService implements registration, login, and profile retrieval.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates a new user and returns a freshly issued token alongside
// it. A user whose email or username is already taken fails with
// domain.ErrUserExists; the existing record is untouched.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login authenticates by email and password. A missing user and a wrong
// password both fail with domain.ErrInvalidCredentials so responses carry no
// enumeration signal.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile fetches the user behind a verified principal. Tokens outlive
// account deletion, so a stale id resolves to domain.ErrUserNotFound rather
// than an authentication failure.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}
