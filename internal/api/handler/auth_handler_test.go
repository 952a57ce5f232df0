package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/codeassist/chat-gateway/internal/api/middleware"
	"github.com/codeassist/chat-gateway/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (string, *domain.User, error) {
			if username != "alice" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s", username, email)
			}
			return "tok123", &domain.User{ID: "u1", Username: username, Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pass1234"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "success" || resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp["token"] != "tok123" {
		t.Fatalf("expected token in response")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password digest must never appear in responses")
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"pass1234"}`)

	_ = h.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (string, *domain.User, error) {
			t.Fatalf("service should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	bodies := []string{
		`{"email":"a@example.com","password":"pass1234"}`,            // no username
		`{"username":"al","email":"a@example.com","password":"pass1234"}`, // username too short
		`{"username":"alice","password":"pass1234"}`,                 // no email
		`{"username":"alice","email":"not-an-email","password":"pass1234"}`,
		`{"username":"alice","email":"a@example.com","password":"short"}`, // password too short
		`not-json`,
	}

	for _, body := range bodies {
		c, rec := newAuthContext(t, http.MethodPost, "/api/auth/register", body)
		_ = h.Register(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "tok456", &domain.User{ID: "u1", Username: "alice", Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass1234"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "success" || resp["message"] != "Login successful" || resp["token"] != "tok456" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong-pass"}`)

	_ = h.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Profile_Success(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodGet, "/api/auth/profile", "")
	c.Set(middleware.PrincipalKey, &domain.Principal{ID: "u1", Username: "alice", Role: domain.RoleUser})

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "success" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Profile_DeletedUser(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodGet, "/api/auth/profile", "")
	c.Set(middleware.PrincipalKey, &domain.Principal{ID: "gone", Username: "ghost", Role: domain.RoleUser})

	_ = h.Profile(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Profile_NoPrincipal(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodGet, "/api/auth/profile", "")

	err := h.Profile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
