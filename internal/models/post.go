package models

import "time"

// Post is an announcement authored by an admin and shown on the public feed.
type Post struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Content       string    `db:"content" json:"content"`
	Image         string    `db:"image" json:"image"`
	AdminUsername string    `db:"admin_username" json:"adminUsername"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// PostInput carries the multipart post form. The image path is filled in by
// the handler after the upload store accepts the file.
type PostInput struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
	Image   string `form:"-" validate:"-"`
}

// PostFilter captures pagination for the public feed.
type PostFilter struct {
	Page     int
	PageSize int
}
