package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/models"
	"github.com/unimate-app/unimate-api/internal/service"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
	"github.com/unimate-app/unimate-api/pkg/response"
	"github.com/unimate-app/unimate-api/pkg/storage"
)

// PostHandler serves the public feed and the admin post CRUD surface.
type PostHandler struct {
	service *service.PostService
	images  *storage.ImageStore
	logger  *zap.Logger
}

// NewPostHandler creates a new handler.
func NewPostHandler(svc *service.PostService, images *storage.ImageStore, logger *zap.Logger) *PostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostHandler{service: svc, images: images, logger: logger}
}

// Feed godoc
// @Summary Public post feed
// @Description Paginated announcements, newest first
// @Tags Posts
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /post [get]
func (h *PostHandler) Feed(c *gin.Context) {
	filter := models.PostFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 20),
	}

	posts, total, err := h.service.Feed(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, posts, &response.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// Create godoc
// @Summary Create post
// @Tags Posts
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/post [post]
func (h *PostHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	input, ok := h.bindPostInput(c)
	if !ok {
		return
	}

	post, err := h.service.Create(c.Request.Context(), claims.Username, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, post)
}

// Update godoc
// @Summary Update post
// @Tags Posts
// @Accept mpfd
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/post/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid post id"))
		return
	}

	input, ok := h.bindPostInput(c)
	if !ok {
		return
	}

	post, err := h.service.Update(c.Request.Context(), id, claims.Username, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post, nil)
}

// Delete godoc
// @Summary Delete post
// @Tags Posts
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/post/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Invalid post id"))
		return
	}

	post, err := h.service.Delete(c.Request.Context(), id, claims.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	if post.Image != "" {
		if err := h.images.Delete(post.Image); err != nil {
			h.logger.Warn("failed to remove post image", zap.String("image", post.Image), zap.Error(err))
		}
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Post deleted"}, nil)
}

func (h *PostHandler) bindPostInput(c *gin.Context) (models.PostInput, bool) {
	var input models.PostInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Title and content are required"))
		return input, false
	}

	if fh, err := c.FormFile("image"); err == nil {
		path, err := h.images.Save(fh, "posts")
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrFileTooLarge) {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid post image"))
				return input, false
			}
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to store post image"))
			return input, false
		}
		input.Image = path
	}

	return input, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
