package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeassist/chat-gateway/internal/api/middleware"
	"github.com/codeassist/chat-gateway/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Its presence proves the middleware ran; a protected handler reached without
// it is a wiring bug and is rejected with 401 rather than trusted.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, _ := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// ctxToken returns the caller's raw bearer token for forwarding upstream.
func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.TokenKey).(string)
	return token
}
