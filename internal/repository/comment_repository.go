// internal/repository/comment_repository.go
package repository

import (
	"database/sql"
	"strconv"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type CommentRepositoryInterface interface {
	Create(c *model.Comment) error
	ListByBlog(blogID int, approvedOnly bool) ([]*model.Comment, error)
	ListPending(offset, limit int) ([]*model.Comment, int, error)
	Approve(id int) error
	Delete(id int) error
	CountPending() (int, error)
}

type CommentRepository struct {
	DB *sql.DB
}

func (r *CommentRepository) Create(c *model.Comment) error {
	c.CreatedAt = time.Now()
	query := `
        INSERT INTO comments (blog_id, author_name, author_email, content, approved, created_at)
        VALUES ($1, $2, $3, $4, false, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.BlogID, c.AuthorName, c.AuthorEmail, c.Content, c.CreatedAt).Scan(&c.ID)
}

func (r *CommentRepository) ListByBlog(blogID int, approvedOnly bool) ([]*model.Comment, error) {
	query := `
        SELECT id, blog_id, author_name, author_email, content, approved, created_at
        FROM comments WHERE blog_id=$1
    `
	if approvedOnly {
		query += " AND approved=true"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(&c.ID, &c.BlogID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.Approved, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) ListPending(offset, limit int) ([]*model.Comment, int, error) {
	query := `
        SELECT id, blog_id, author_name, author_email, content, approved, created_at
        FROM comments WHERE approved=false
        ORDER BY created_at LIMIT $1 OFFSET $2
    `
	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(&c.ID, &c.BlogID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.Approved, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM comments WHERE approved=false`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentRepository) Approve(id int) error {
	res, err := r.DB.Exec(`UPDATE comments SET approved=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("comment", strconv.Itoa(id))
	}
	return nil
}

func (r *CommentRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("comment", strconv.Itoa(id))
	}
	return nil
}

func (r *CommentRepository) CountPending() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM comments WHERE approved=false`).Scan(&count)
	return count, err
}

var _ CommentRepositoryInterface = (*CommentRepository)(nil)
