package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codeassist/chat-gateway/internal/core/domain"
	"github.com/codeassist/chat-gateway/internal/core/service"
)

func issueToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	tokens := service.NewJWTTokenService(secret, ttl)
	token, err := tokens.Issue(&domain.User{
		ID:       "64f1b2c3d4e5f60718293a4b",
		Username: "alice",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(service.NewJWTTokenService("secret", time.Hour))
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, c
}

func TestAuth_ValidToken(t *testing.T) {
	token := issueToken(t, "secret", time.Hour)
	rec, called, c := runAuth(t, "Bearer "+token)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	if p == nil || p.Username != "alice" || p.ID != "64f1b2c3d4e5f60718293a4b" {
		t.Fatalf("principal not injected: %+v", p)
	}
	if got, _ := c.Get(TokenKey).(string); got != token {
		t.Fatalf("raw token not injected")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, called, _ := runAuth(t, "")
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeaders(t *testing.T) {
	token := issueToken(t, "secret", time.Hour)

	malformed := []string{
		"Token " + token,    // wrong scheme
		"bearer " + token,   // scheme keyword is case-sensitive
		"BEARER " + token,   // scheme keyword is case-sensitive
		"Bearer",            // no separator
		"Bearer ",           // empty token
		"Bearer  " + token,  // double space leaves a leading space in the token
		"Bearer\t" + token,  // tab is not a valid separator
	}

	for _, header := range malformed {
		rec, called, _ := runAuth(t, header)
		if called {
			t.Fatalf("next should not be called for header %q", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := issueToken(t, "secret", -time.Minute)
	rec, called, _ := runAuth(t, "Bearer "+token)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token := issueToken(t, "other-secret", time.Hour)
	rec, called, _ := runAuth(t, "Bearer "+token)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
