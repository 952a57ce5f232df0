package ports

import (
	"context"

	"github.com/codeassist/chat-gateway/internal/core/domain"
)

// PasswordHasher produces and checks one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenService issues and verifies signed bearer tokens. Tokens are
// stateless: validity is solely a function of signature and expiry.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.Principal, error)
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
