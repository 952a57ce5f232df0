package domain

import (
	"encoding/json"
	"errors"
)

// ErrBackendUnavailable signals that the chat service could not be reached or
// did not answer within the timeout budget.
var ErrBackendUnavailable = errors.New("chat service unavailable")

// Message is a single entry in a completion exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the body forwarded to the chat service for a
// completion call. Optional tuning fields are pointers so that absent and
// zero values are distinguishable on the wire.
type CompletionRequest struct {
	Messages       []Message `json:"messages"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Model          string    `json:"model,omitempty"`
	Temperature    *float64  `json:"temperature,omitempty"`
	MaxTokens      *int      `json:"max_tokens,omitempty"`
	CodeContext    string    `json:"code_context,omitempty"`
}

// UpstreamResult is the raw outcome of a forwarded call: the status code the
// chat service answered with and its unparsed body. Success bodies are
// relayed to the caller untouched.
type UpstreamResult struct {
	Status int
	Body   []byte
}

// OK reports whether the upstream answered with a non-error status.
func (r *UpstreamResult) OK() bool {
	return r.Status < 400
}

const fallbackErrorMessage = "Unknown error"

// ErrorMessage extracts a human-readable error from an upstream error body:
// the "detail" field when populated, then "message", then a fixed fallback.
// Bodies that are not JSON objects yield the fallback.
func (r *UpstreamResult) ErrorMessage() string {
	var body map[string]any
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return fallbackErrorMessage
	}
	if s, ok := body["detail"].(string); ok && s != "" {
		return s
	}
	if s, ok := body["message"].(string); ok && s != "" {
		return s
	}
	return fallbackErrorMessage
}
