package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeassist/chat-gateway/internal/api/metrics"
	"github.com/codeassist/chat-gateway/internal/core/domain"
)

const (
	// Completion calls run model inference and get a long budget; metadata
	// reads and writes on conversations get a short one.
	defaultCompletionTimeout = 60 * time.Second
	defaultMetadataTimeout   = 10 * time.Second

	maxResponseBytes = 4 << 20
)

// ChatServiceClient forwards authenticated requests to the chat service. The
// timeout is a hard cancellation point: on expiry the in-flight call is
// abandoned and the caller gets domain.ErrBackendUnavailable.
type ChatServiceClient struct {
	baseURL           string
	client            *http.Client
	completionTimeout time.Duration
	metadataTimeout   time.Duration
	log               zerolog.Logger
}

// Option overrides a ChatServiceClient default.
type Option func(*ChatServiceClient)

// WithTimeouts sets the completion and metadata timeout budgets.
func WithTimeouts(completion, metadata time.Duration) Option {
	return func(c *ChatServiceClient) {
		if completion > 0 {
			c.completionTimeout = completion
		}
		if metadata > 0 {
			c.metadataTimeout = metadata
		}
	}
}

func NewChatServiceClient(baseURL string, log zerolog.Logger, opts ...Option) *ChatServiceClient {
	c := &ChatServiceClient{
		baseURL:           strings.TrimRight(baseURL, "/"),
		client:            &http.Client{},
		completionTimeout: defaultCompletionTimeout,
		metadataTimeout:   defaultMetadataTimeout,
		log:               log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ChatServiceClient) Completions(ctx context.Context, token string, req *domain.CompletionRequest) (*domain.UpstreamResult, error) {
	return c.forward(ctx, "completions", http.MethodPost, "/api/chat/completions", req, token, c.completionTimeout)
}

func (c *ChatServiceClient) ListConversations(ctx context.Context, token string) (*domain.UpstreamResult, error) {
	return c.forward(ctx, "conversations_list", http.MethodGet, "/api/chat/conversations", nil, token, c.metadataTimeout)
}

func (c *ChatServiceClient) GetConversation(ctx context.Context, token, id string) (*domain.UpstreamResult, error) {
	return c.forward(ctx, "conversations_get", http.MethodGet, conversationPath(id), nil, token, c.metadataTimeout)
}

func (c *ChatServiceClient) DeleteConversation(ctx context.Context, token, id string) (*domain.UpstreamResult, error) {
	return c.forward(ctx, "conversations_delete", http.MethodDelete, conversationPath(id), nil, token, c.metadataTimeout)
}

func (c *ChatServiceClient) RenameConversation(ctx context.Context, token, id, title string) (*domain.UpstreamResult, error) {
	body := map[string]string{"title": title}
	return c.forward(ctx, "conversations_rename", http.MethodPut, conversationPath(id)+"/title", body, token, c.metadataTimeout)
}

func conversationPath(id string) string {
	return "/api/chat/conversations/" + url.PathEscape(id)
}

// forward performs one backend call. Any error reaching or hearing back from
// the chat service collapses into domain.ErrBackendUnavailable; a response
// with any status code is a successful forward and is returned as-is.
func (c *ChatServiceClient) forward(ctx context.Context, route, method, path string, body any, token string, timeout time.Duration) (*domain.UpstreamResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(route, "unavailable").Observe(time.Since(start).Seconds())
		c.log.Error().Err(err).Str("route", route).Msg("chat service call failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(route, "unavailable").Observe(time.Since(start).Seconds())
		c.log.Error().Err(err).Str("route", route).Msg("chat service response read failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}

	outcome := "ok"
	if resp.StatusCode >= 400 {
		outcome = "upstream_error"
		c.log.Warn().Str("route", route).Int("status", resp.StatusCode).Msg("chat service returned error status")
	}
	metrics.BackendRequestDuration.WithLabelValues(route, outcome).Observe(time.Since(start).Seconds())

	return &domain.UpstreamResult{Status: resp.StatusCode, Body: data}, nil
}
