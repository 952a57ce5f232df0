package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeassist/chat-gateway/internal/core/domain"
	"github.com/codeassist/chat-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func toUserView(u *domain.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// Register creates a new user account and returns a fresh token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Failure      500   {object}  errorEnvelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: err.Error()})
	}

	token, user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorEnvelope{Status: "error", Message: "User already exists"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "All fields are required"})
		}
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Status:  "success",
		Message: "User registered successfully",
		Token:   token,
		User:    toUserView(user),
	})
}

// Login authenticates a user and returns a fresh token. A missing account and
// a wrong password produce the same response.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      500   {object}  errorEnvelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorEnvelope{Status: "error", Message: "Invalid credentials"})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Status:  "success",
		Message: "Login successful",
		Token:   token,
		User:    toUserView(user),
	})
}

// Profile returns the account behind the caller's token. Tokens are not
// invalidated by account deletion, so a verified token whose user id no
// longer resolves yields 404 rather than 401.
//
// @Summary      Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Failure      500  {object}  errorEnvelope
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), principal.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorEnvelope{Status: "error", Message: "User not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{Status: "success", User: toUserView(user)})
}
