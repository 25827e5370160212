package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/internal/service"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
)

// ContactHandler accepts contact-form and newsletter submissions.
type ContactHandler struct {
	service *service.EmailService
}

// NewContactHandler creates a new handler.
func NewContactHandler(svc *service.EmailService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// Contact godoc
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body models.ContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Contact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Missing required fields"))
		return
	}

	if err := h.service.SendContact(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Message sent"}, nil)
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body models.SubscribeRequest true "Subscribe payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subscribe [post]
func (h *ContactHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "A valid email is required"))
		return
	}

	if err := h.service.Subscribe(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Subscribed"}, nil)
}
