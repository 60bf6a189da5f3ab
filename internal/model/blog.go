// internal/model/blog.go
package model

import "time"

type Blog struct {
	ID        int        `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Slug      string     `db:"slug" json:"slug"`
	Content   string     `db:"content" json:"content"`
	Excerpt   string     `db:"excerpt" json:"excerpt"`
	ImageURL  *string    `db:"image_url" json:"image_url,omitempty"`
	Tags      []string   `db:"tags" json:"tags"`
	Published bool       `db:"published" json:"published"`
	AuthorID  int        `db:"author_id" json:"author_id"`
	ViewCount int        `db:"view_count" json:"view_count"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type Comment struct {
	ID          int       `db:"id" json:"id"`
	BlogID      int       `db:"blog_id" json:"blog_id"`
	AuthorName  string    `db:"author_name" json:"author_name"`
	AuthorEmail string    `db:"author_email" json:"author_email"`
	Content     string    `db:"content" json:"content"`
	Approved    bool      `db:"approved" json:"approved"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
