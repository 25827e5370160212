package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/internal/service"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
)

// PaymentHandler wires the payment recording and paid-status endpoints.
type PaymentHandler struct {
	service *service.PaymentService
}

// NewPaymentHandler creates a new handler.
func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// Record godoc
// @Summary Record payment callback
// @Description Stores the gateway callback and starts confirmation polling on reported success
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body models.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /payment [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Missing required fields"))
		return
	}

	if err := h.service.Record(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "Payment recorded"})
}

// PaidStatus godoc
// @Summary Check paid access
// @Tags Payments
// @Accept mpfd
// @Produce json
// @Param action query string true "check-payment-status"
// @Param userId formData string true "User id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /paid [post]
func (h *PaymentHandler) PaidStatus(c *gin.Context) {
	if c.Query("action") != "check-payment-status" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid action"))
		return
	}

	userID, err := strconv.ParseInt(c.PostForm("userId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "A valid userId is required"))
		return
	}

	status, err := h.service.CheckPaid(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, status, nil)
}

// Overview godoc
// @Summary Payment activity overview
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/payment [get]
func (h *PaymentHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, overview, nil)
}
