package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimate-app/unimate-api/internal/service"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
)

// UserHandler serves the peer roster and presence heartbeats.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Peers godoc
// @Summary List other users
// @Description Returns every user except the caller with presence info
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user [get]
func (h *UserHandler) Peers(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	peers, err := h.service.Peers(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, peers, nil)
}

// Heartbeat godoc
// @Summary Refresh presence
// @Description Marks the caller as recently seen
// @Tags Users
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/heartbeat [post]
func (h *UserHandler) Heartbeat(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Heartbeat(c.Request.Context(), claims.PrincipalID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
