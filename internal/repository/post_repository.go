package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unimate-app/unimate-api/internal/models"
)

// PostRepository provides database access for the post feed.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a post owned by the given admin.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	const query = `INSERT INTO posts (title, content, image, admin_username, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		post.Title, post.Content, post.Image, post.AdminUsername, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update rewrites a post's content, scoped to its owning admin. A missing
// image keeps the stored one. Returns sql.ErrNoRows when no row matched.
func (r *PostRepository) Update(ctx context.Context, id int64, adminUsername string, input models.PostInput) error {
	const query = `UPDATE posts SET title = $1, content = $2, image = COALESCE(NULLIF($3, ''), image), updated_at = $4 WHERE id = $5 AND admin_username = $6`
	res, err := r.db.ExecContext(ctx, query, input.Title, input.Content, input.Image, time.Now().UTC(), id, adminUsername)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update post result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a post, scoped to its owning admin. Returns sql.ErrNoRows
// when no row matched.
func (r *PostRepository) Delete(ctx context.Context, id int64, adminUsername string) error {
	const query = `DELETE FROM posts WHERE id = $1 AND admin_username = $2`
	res, err := r.db.ExecContext(ctx, query, id, adminUsername)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID returns a post by identifier.
func (r *PostRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	const query = `SELECT id, title, content, image, admin_username, created_at, updated_at FROM posts WHERE id = $1 LIMIT 1`
	var post models.Post
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return &post, nil
}

// List returns posts newest first with a total count for pagination.
func (r *PostRepository) List(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf(`SELECT id, title, content, image, admin_username, created_at, updated_at FROM posts ORDER BY created_at DESC LIMIT %d OFFSET %d`, pageSize, offset)

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, listQuery); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	return posts, total, nil
}
