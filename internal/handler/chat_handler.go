package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimate-app/unimate-api/internal/service"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
)

// ChatHandler serves the chat roster with a caller-scoped chat token.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler creates a new handler.
func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// Roster godoc
// @Summary Chat roster and token
// @Description Returns chat peers and a chat token for the caller. Requires a confirmed payment.
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /token [get]
func (h *ChatHandler) Roster(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	roster, err := h.service.Roster(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, roster, nil)
}
