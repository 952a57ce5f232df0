package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codeassist/chat-gateway/internal/api/metrics"
	"github.com/codeassist/chat-gateway/internal/core/domain"
	"github.com/codeassist/chat-gateway/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	PrincipalKey = "principal"
	TokenKey     = "auth_token"
)

// Auth verifies the bearer token on every protected route and injects the
// principal and the raw token into context. The header must be exactly
// "Bearer <token>": case-sensitive scheme, single space. Verification
// failures all collapse to the same 401 so callers cannot tell a malformed
// token from an expired one.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || scheme != "Bearer" || token == "" {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := tokens.Verify(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired_token"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(PrincipalKey, principal)
			c.Set(TokenKey, token)

			return next(c)
		}
	}
}
