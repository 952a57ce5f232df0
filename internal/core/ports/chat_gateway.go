package ports

import (
	"context"

	"github.com/codeassist/chat-gateway/internal/core/domain"
)

// ChatGateway forwards authenticated requests to the chat service. Every
// method carries the caller's original bearer token so the backend sees the
// same identity the gateway verified. A nil error with a non-nil result means
// the backend answered; transport failures and timeouts surface as
// domain.ErrBackendUnavailable.
type ChatGateway interface {
	Completions(ctx context.Context, token string, req *domain.CompletionRequest) (*domain.UpstreamResult, error)
	ListConversations(ctx context.Context, token string) (*domain.UpstreamResult, error)
	GetConversation(ctx context.Context, token, id string) (*domain.UpstreamResult, error)
	DeleteConversation(ctx context.Context, token, id string) (*domain.UpstreamResult, error)
	RenameConversation(ctx context.Context, token, id, title string) (*domain.UpstreamResult, error)
}
