package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/models"
	appErrors "github.com/unimate-app/unimate-api/pkg/errors"
)

type mockPostRepo struct {
	posts     map[int64]*models.Post
	nextID    int64
	listCalls int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: map[int64]*models.Post{}, nextID: 1}
}

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = m.nextID
	m.nextID++
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *mockPostRepo) Update(ctx context.Context, id int64, adminUsername string, input models.PostInput) error {
	post, ok := m.posts[id]
	if !ok || post.AdminUsername != adminUsername {
		return sql.ErrNoRows
	}
	post.Title = input.Title
	post.Content = input.Content
	if input.Image != "" {
		post.Image = input.Image
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64, adminUsername string) error {
	post, ok := m.posts[id]
	if !ok || post.AdminUsername != adminUsername {
		return sql.ErrNoRows
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (m *mockPostRepo) List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	m.listCalls++
	out := make([]models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		out = append(out, *post)
	}
	return out, len(out), nil
}

type mockFeedCache struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newMockFeedCache() *mockFeedCache {
	return &mockFeedCache{entries: map[string][]byte{}}
}

func (m *mockFeedCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockFeedCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *mockFeedCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = map[string][]byte{}
	m.deletes++
	return nil
}

func TestPostServiceFeedCachesPages(t *testing.T) {
	repo := newMockPostRepo()
	cache := newMockFeedCache()
	svc := NewPostService(repo, cache, validator.New(), zap.NewNop(), time.Minute)

	_, err := svc.Create(context.Background(), "root", models.PostInput{Title: "Hi", Content: "Body"})
	require.NoError(t, err)

	posts, total, err := svc.Feed(context.Background(), models.PostFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, repo.listCalls)

	// Second read comes from cache.
	_, _, err = svc.Feed(context.Background(), models.PostFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestPostServiceWritesInvalidateFeed(t *testing.T) {
	repo := newMockPostRepo()
	cache := newMockFeedCache()
	svc := NewPostService(repo, cache, validator.New(), zap.NewNop(), time.Minute)

	post, err := svc.Create(context.Background(), "root", models.PostInput{Title: "Hi", Content: "Body"})
	require.NoError(t, err)

	_, _, err = svc.Feed(context.Background(), models.PostFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, cache.entries)

	_, err = svc.Update(context.Background(), post.ID, "root", models.PostInput{Title: "New", Content: "Body"})
	require.NoError(t, err)
	assert.Empty(t, cache.entries)

	_, _, err = svc.Feed(context.Background(), models.PostFilter{})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), post.ID, "root")
	require.NoError(t, err)
	assert.Empty(t, cache.entries)
}

func TestPostServiceCreateValidation(t *testing.T) {
	svc := NewPostService(newMockPostRepo(), newMockFeedCache(), validator.New(), zap.NewNop(), time.Minute)

	_, err := svc.Create(context.Background(), "root", models.PostInput{Title: "", Content: "Body"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPostServiceUpdateWrongOwner(t *testing.T) {
	repo := newMockPostRepo()
	svc := NewPostService(repo, newMockFeedCache(), validator.New(), zap.NewNop(), time.Minute)

	post, err := svc.Create(context.Background(), "root", models.PostInput{Title: "Hi", Content: "Body"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), post.ID, "other", models.PostInput{Title: "New", Content: "Body"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Post not found", appErr.Message)
}

func TestPostServiceDeleteReturnsRemovedPost(t *testing.T) {
	repo := newMockPostRepo()
	svc := NewPostService(repo, newMockFeedCache(), validator.New(), zap.NewNop(), time.Minute)

	created, err := svc.Create(context.Background(), "root", models.PostInput{Title: "Hi", Content: "Body", Image: "/uploads/posts/x.jpg"})
	require.NoError(t, err)

	removed, err := svc.Delete(context.Background(), created.ID, "root")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/posts/x.jpg", removed.Image)

	_, err = svc.Delete(context.Background(), created.ID, "root")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPostServiceFeedSurvivesCacheMiss(t *testing.T) {
	repo := newMockPostRepo()
	svc := NewPostService(repo, nil, validator.New(), zap.NewNop(), time.Minute)

	_, _, err := svc.Feed(context.Background(), models.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}
