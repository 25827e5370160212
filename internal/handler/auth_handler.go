package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/internal/service"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
	"github.com/unimate-app/unimate-api/pkg/storage"
)

// AuthHandler wires the signup/login endpoint to the auth service. Both
// operations share one route and are selected by the action query parameter.
type AuthHandler struct {
	service *service.AuthService
	images  *storage.ImageStore
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, images *storage.ImageStore) *AuthHandler {
	return &AuthHandler{service: svc, images: images}
}

// Authenticate godoc
// @Summary Sign up or log in
// @Description Dispatches on the action query parameter: signup (multipart) or login (JSON)
// @Tags Authentication
// @Accept json
// @Produce json
// @Param action query string true "signup or login"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	switch c.Query("action") {
	case "signup":
		h.signup(c)
	case "login":
		h.login(c)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid action"))
	}
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Missing required fields"))
		return
	}

	if fh, err := c.FormFile("profileImage"); err == nil {
		path, err := h.images.Save(fh, "profiles")
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrFileTooLarge) {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid profile image"))
				return
			}
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to store profile image"))
			return
		}
		req.ProfileImage = path
	}

	if err := h.service.Signup(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "Signup successful!"})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Username and password are required"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
