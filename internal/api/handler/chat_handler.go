package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codeassist/chat-gateway/internal/core/domain"
	"github.com/codeassist/chat-gateway/internal/core/ports"
)

const unavailableAdvisory = "Unable to reach the chat service. Please try again later."

// ChatHandler relays authenticated chat requests to the chat service.
// Successful backend responses pass through untouched; failures are
// re-wrapped in the gateway's own envelope so clients see one consistent
// shape regardless of where the error originated.
type ChatHandler struct {
	gateway    ports.ChatGateway
	production bool
}

func NewChatHandler(gateway ports.ChatGateway, production bool) *ChatHandler {
	return &ChatHandler{gateway: gateway, production: production}
}

// Completions forwards a completion request.
//
// @Summary      Request a chat completion
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.CompletionRequest  true  "Completion request"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      503   {object}  errorEnvelope
// @Router       /api/chat/completions [post]
func (h *ChatHandler) Completions(c echo.Context) error {
	var req domain.CompletionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Invalid request payload"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Messages array is required"})
	}

	res, err := h.gateway.Completions(c.Request().Context(), ctxToken(c), &req)
	return h.relay(c, res, err, "Error processing chat request")
}

// ListConversations forwards the conversation listing.
//
// @Summary      List the caller's conversations
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   map[string]any
// @Failure      401  {object}  errorEnvelope
// @Failure      503  {object}  errorEnvelope
// @Router       /api/chat/conversations [get]
func (h *ChatHandler) ListConversations(c echo.Context) error {
	res, err := h.gateway.ListConversations(c.Request().Context(), ctxToken(c))
	return h.relay(c, res, err, "Error fetching conversations")
}

// GetConversation forwards a single conversation fetch.
//
// @Summary      Get a conversation
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  errorEnvelope
// @Failure      401  {object}  errorEnvelope
// @Failure      503  {object}  errorEnvelope
// @Router       /api/chat/conversations/{id} [get]
func (h *ChatHandler) GetConversation(c echo.Context) error {
	id, ok := conversationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Conversation ID is required"})
	}

	res, err := h.gateway.GetConversation(c.Request().Context(), ctxToken(c), id)
	return h.relay(c, res, err, "Error fetching conversation")
}

// DeleteConversation forwards a conversation deletion.
//
// @Summary      Delete a conversation
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  errorEnvelope
// @Failure      401  {object}  errorEnvelope
// @Failure      503  {object}  errorEnvelope
// @Router       /api/chat/conversations/{id} [delete]
func (h *ChatHandler) DeleteConversation(c echo.Context) error {
	id, ok := conversationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Conversation ID is required"})
	}

	res, err := h.gateway.DeleteConversation(c.Request().Context(), ctxToken(c), id)
	return h.relay(c, res, err, "Error deleting conversation")
}

// RenameConversation forwards a conversation title update.
//
// @Summary      Rename a conversation
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Conversation ID"
// @Param        body  body      renameConversationRequest  true  "New title"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      503   {object}  errorEnvelope
// @Router       /api/chat/conversations/{id}/title [put]
func (h *ChatHandler) RenameConversation(c echo.Context) error {
	id, ok := conversationID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Conversation ID is required"})
	}

	var req renameConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Invalid request payload"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Status: "error", Message: "Title is required"})
	}

	res, err := h.gateway.RenameConversation(c.Request().Context(), ctxToken(c), id, req.Title)
	return h.relay(c, res, err, "Error updating conversation title")
}

// conversationID validates the :id path parameter before any backend call.
func conversationID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	return id, id != ""
}

// relay translates a forwarded call's outcome into the client response:
// backend success bodies pass through opaquely with the backend's status;
// backend error statuses keep their code but are re-wrapped in the gateway
// envelope; transport failures become a fixed 503; anything else local is a
// 500 whose detail is shown only outside production.
func (h *ChatHandler) relay(c echo.Context, res *domain.UpstreamResult, err error, message string) error {
	if err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, errorEnvelope{
				Status:  "error",
				Message: "Chat service unavailable",
				Error:   unavailableAdvisory,
			})
		}

		detail := ""
		if !h.production {
			detail = err.Error()
		}
		return c.JSON(http.StatusInternalServerError, errorEnvelope{
			Status:  "error",
			Message: message,
			Error:   detail,
		})
	}

	if !res.OK() {
		return c.JSON(res.Status, errorEnvelope{
			Status:  "error",
			Message: message,
			Error:   res.ErrorMessage(),
		})
	}

	return c.JSONBlob(res.Status, res.Body)
}
