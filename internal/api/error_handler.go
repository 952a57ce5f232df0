package api

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codeassist/chat-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for faults that reach the
// central handler. Stack is populated only outside production.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs every fault with full detail server-side, regardless of what the
//     client is shown.
//   - Renders the consistent envelope {"status":"error","message":...}; in
//     non-production deployments unexpected faults also carry a stack.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, production)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, errorResponse) {
	// Echo's own errors (bind failures, 404/405 from the router, middleware
	// rejections raised as HTTPError).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code == http.StatusNotFound {
			msg = "Resource not found"
		}
		return he.Code, errorResponse{Status: "error", Message: msg}
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "Invalid credentials"}
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "invalid token"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "User not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Status: "error", Message: "User already exists"}
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Status: "error", Message: "Chat service unavailable"}
	}

	// Unexpected fault: log the real cause, return a generic message. Detail
	// and stack leak only outside production.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	body := errorResponse{Status: "error", Message: "Internal server error"}
	if !production {
		body.Message = err.Error()
		body.Stack = string(debug.Stack())
	}
	return http.StatusInternalServerError, body
}
