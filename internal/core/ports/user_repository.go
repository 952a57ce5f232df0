package ports

import (
	"context"

	"github.com/codeassist/chat-gateway/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Implementations
// must enforce uniqueness of both username and email and report violations
// as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
