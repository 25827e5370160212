package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

type postRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id int64, adminUsername string, input models.PostInput) error
	Delete(ctx context.Context, id int64, adminUsername string) error
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error)
}

type feedCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cachedFeedPage struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
}

// PostService manages the announcement feed: public paginated reads and
// admin-owned writes. Feed pages are cached; any write invalidates every
// cached page.
type PostService struct {
	repo      postRepository
	cache     feedCache
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewPostService constructs a PostService instance.
func NewPostService(repo postRepository, cache feedCache, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &PostService{repo: repo, cache: cache, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// Feed returns a page of posts, newest first, serving from cache when a
// fresh copy exists.
func (s *PostService) Feed(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	key := feedCacheKey(filter)

	if s.cache != nil {
		var page cachedFeedPage
		err := s.cache.Get(ctx, key, &page)
		if err == nil {
			return page.Posts, page.Total, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("feed cache lookup failed", zap.String("key", key), zap.Error(err))
		}
	}

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load posts")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cachedFeedPage{Posts: posts, Total: total}, s.cacheTTL); err != nil {
			s.logger.Warn("feed cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return posts, total, nil
}

// Create stores a new post authored by the given admin.
func (s *PostService) Create(ctx context.Context, adminUsername string, input models.PostInput) (*models.Post, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Title and content are required")
	}

	post := &models.Post{
		Title:         input.Title,
		Content:       input.Content,
		Image:         input.Image,
		AdminUsername: adminUsername,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to create post")
	}

	s.invalidateFeed(ctx)
	return post, nil
}

// Update rewrites a post owned by the given admin. A post owned by another
// admin is indistinguishable from a missing one.
func (s *PostService) Update(ctx context.Context, id int64, adminUsername string, input models.PostInput) (*models.Post, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Title and content are required")
	}

	if err := s.repo.Update(ctx, id, adminUsername, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update post")
	}

	s.invalidateFeed(ctx)

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to load post")
	}
	return post, nil
}

// Delete removes a post owned by the given admin and returns the removed
// post so the caller can clean up its image file.
func (s *PostService) Delete(ctx context.Context, id int64, adminUsername string) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to load post")
	}

	if err := s.repo.Delete(ctx, id, adminUsername); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete post")
	}

	s.invalidateFeed(ctx)
	return post, nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "feed:*"); err != nil {
		s.logger.Warn("feed cache invalidation failed", zap.Error(err))
	}
}

func feedCacheKey(filter models.PostFilter) string {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return fmt.Sprintf("feed:page:%d:size:%d", page, pageSize)
}
