// internal/repository/review_repository.go
package repository

import (
	"database/sql"
	"strconv"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type ReviewRepositoryInterface interface {
	Create(rv *model.Review) error
	List(offset, limit int, approvedOnly bool) ([]*model.Review, int, error)
	Approve(id int) error
	Delete(id int) error
	AverageRating() (float64, error)
	CountPending() (int, error)
}

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) Create(rv *model.Review) error {
	rv.CreatedAt = time.Now()
	query := `
        INSERT INTO reviews (author_name, rating, content, approved, created_at)
        VALUES ($1, $2, $3, false, $4)
        RETURNING id
    `
	return r.DB.QueryRow(query, rv.AuthorName, rv.Rating, rv.Content, rv.CreatedAt).Scan(&rv.ID)
}

func (r *ReviewRepository) List(offset, limit int, approvedOnly bool) ([]*model.Review, int, error) {
	where := ""
	if approvedOnly {
		where = " WHERE approved=true"
	}
	query := `
        SELECT id, author_name, rating, content, approved, created_at
        FROM reviews` + where + `
        ORDER BY created_at DESC LIMIT $1 OFFSET $2
    `
	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews := []*model.Review{}
	for rows.Next() {
		rv := &model.Review{}
		if err := rows.Scan(&rv.ID, &rv.AuthorName, &rv.Rating, &rv.Content, &rv.Approved, &rv.CreatedAt); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM reviews` + where).Scan(&total); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) Approve(id int) error {
	res, err := r.DB.Exec(`UPDATE reviews SET approved=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("review", strconv.Itoa(id))
	}
	return nil
}

func (r *ReviewRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("review", strconv.Itoa(id))
	}
	return nil
}

func (r *ReviewRepository) AverageRating() (float64, error) {
	var avg float64
	err := r.DB.QueryRow(`SELECT COALESCE(AVG(rating),0) FROM reviews WHERE approved=true`).Scan(&avg)
	return avg, err
}

func (r *ReviewRepository) CountPending() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM reviews WHERE approved=false`).Scan(&count)
	return count, err
}

var _ ReviewRepositoryInterface = (*ReviewRepository)(nil)
