// internal/repository/blog_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type BlogRepositoryInterface interface {
	List(offset, limit int, publishedOnly bool, tag, search string) ([]*model.Blog, int, error)
	GetBySlug(slug string) (*model.Blog, error)
	GetByID(id int) (*model.Blog, error)
	IncrementViewCount(id int) error
	// ListByTagOverlap returns published posts sharing at least one tag
	// with the given set, excluding one post. The caller ranks them.
	ListByTagOverlap(tags []string, excludeID int) ([]*model.Blog, error)
	Create(b *model.Blog) error
	Update(b *model.Blog) error
	Delete(id int) error
	CountByPublished() (published int, drafts int, err error)
}

type BlogRepository struct {
	DB *sql.DB
}

const blogColumns = `id, title, slug, content, excerpt, image_url, tags, published, author_id, view_count, created_at, updated_at`

func scanBlog(row interface{ Scan(...interface{}) error }) (*model.Blog, error) {
	var b model.Blog
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt, &b.ImageURL,
		pq.Array(&b.Tags), &b.Published, &b.AuthorID, &b.ViewCount,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepository) List(offset, limit int, publishedOnly bool, tag, search string) ([]*model.Blog, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if publishedOnly {
		where += " AND published=true"
	}
	if tag != "" {
		where += fmt.Sprintf(" AND $%d = ANY(tags)", argPos)
		args = append(args, tag)
		argPos++
	}
	if search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+search+"%")
		argPos++
	}

	query := `SELECT ` + blogColumns + ` FROM blogs` + where
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	listArgs := append(append([]interface{}{}, args...), limit, offset)

	rows, err := r.DB.Query(query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	blogs := []*model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM blogs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (r *BlogRepository) GetBySlug(slug string) (*model.Blog, error) {
	b, err := scanBlog(r.DB.QueryRow(`SELECT `+blogColumns+` FROM blogs WHERE slug=$1`, slug))
	if err == sql.ErrNoRows {
		return nil, appErrors.NewNotFound("blog", slug)
	}
	return b, err
}

func (r *BlogRepository) GetByID(id int) (*model.Blog, error) {
	b, err := scanBlog(r.DB.QueryRow(`SELECT `+blogColumns+` FROM blogs WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, appErrors.NewNotFound("blog", strconv.Itoa(id))
	}
	return b, err
}

func (r *BlogRepository) IncrementViewCount(id int) error {
	_, err := r.DB.Exec(`UPDATE blogs SET view_count=view_count+1 WHERE id=$1`, id)
	return err
}

func (r *BlogRepository) ListByTagOverlap(tags []string, excludeID int) ([]*model.Blog, error) {
	query := `
        SELECT ` + blogColumns + `
        FROM blogs
        WHERE published=true AND id <> $1 AND tags && $2
    `
	rows, err := r.DB.Query(query, excludeID, pq.Array(tags))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []*model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) Create(b *model.Blog) error {
	b.CreatedAt = time.Now()
	query := `
        INSERT INTO blogs (title, slug, content, excerpt, image_url, tags, published, author_id, view_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		b.Title, b.Slug, b.Content, b.Excerpt, b.ImageURL,
		pq.Array(b.Tags), b.Published, b.AuthorID, b.CreatedAt,
	).Scan(&b.ID)
}

func (r *BlogRepository) Update(b *model.Blog) error {
	query := `
        UPDATE blogs
        SET title=$1, slug=$2, content=$3, excerpt=$4, image_url=$5, tags=$6, published=$7, updated_at=NOW()
        WHERE id=$8
    `
	res, err := r.DB.Exec(query,
		b.Title, b.Slug, b.Content, b.Excerpt, b.ImageURL,
		pq.Array(b.Tags), b.Published, b.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("blog", strconv.Itoa(b.ID))
	}
	return nil
}

func (r *BlogRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("blog", strconv.Itoa(id))
	}
	return nil
}

func (r *BlogRepository) CountByPublished() (int, int, error) {
	rows, err := r.DB.Query(`SELECT published, COUNT(*) FROM blogs GROUP BY published`)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	var published, drafts int
	for rows.Next() {
		var isPublished bool
		var count int
		if err := rows.Scan(&isPublished, &count); err != nil {
			return 0, 0, err
		}
		if isPublished {
			published = count
		} else {
			drafts = count
		}
	}
	return published, drafts, rows.Err()
}

var _ BlogRepositoryInterface = (*BlogRepository)(nil)
