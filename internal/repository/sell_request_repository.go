// internal/repository/sell_request_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type SellRequestRepositoryInterface interface {
	Create(s *model.SellRequest) error
	GetByID(id int) (*model.SellRequest, error)
	List(offset, limit int, status string) ([]*model.SellRequest, int, error)
	UpdateStatus(id int, status string) error
	Delete(id int) error
	CountByStatus() (map[string]int, error)
}

type SellRequestRepository struct {
	DB *sql.DB
}

const sellRequestColumns = `id, name, email, phone, make, model, year, mileage, expected_price, condition, message, image_url, status, created_at`

func scanSellRequest(row interface{ Scan(...interface{}) error }) (*model.SellRequest, error) {
	var s model.SellRequest
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Make, &s.Model,
		&s.Year, &s.Mileage, &s.ExpectedPrice, &s.Condition,
		&s.Message, &s.ImageURL, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SellRequestRepository) Create(s *model.SellRequest) error {
	s.CreatedAt = time.Now()
	if s.Status == "" {
		s.Status = model.SellRequestStatusNew
	}
	query := `
        INSERT INTO sell_requests (name, email, phone, make, model, year, mileage, expected_price, condition, message, image_url, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		s.Name, s.Email, s.Phone, s.Make, s.Model, s.Year, s.Mileage,
		s.ExpectedPrice, s.Condition, s.Message, s.ImageURL, s.Status, s.CreatedAt,
	).Scan(&s.ID)
}

func (r *SellRequestRepository) GetByID(id int) (*model.SellRequest, error) {
	s, err := scanSellRequest(r.DB.QueryRow(`SELECT `+sellRequestColumns+` FROM sell_requests WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, appErrors.NewNotFound("sell request", strconv.Itoa(id))
	}
	return s, err
}

func (r *SellRequestRepository) List(offset, limit int, status string) ([]*model.SellRequest, int, error) {
	requests := []*model.SellRequest{}
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if status != "" {
		where += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query := `SELECT ` + sellRequestColumns + ` FROM sell_requests` + where
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	listArgs := append(append([]interface{}{}, args...), limit, offset)

	rows, err := r.DB.Query(query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSellRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, s)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM sell_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *SellRequestRepository) UpdateStatus(id int, status string) error {
	res, err := r.DB.Exec(`UPDATE sell_requests SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("sell request", strconv.Itoa(id))
	}
	return nil
}

func (r *SellRequestRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM sell_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("sell request", strconv.Itoa(id))
	}
	return nil
}

func (r *SellRequestRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM sell_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{
		model.SellRequestStatusNew:       0,
		model.SellRequestStatusContacted: 0,
		model.SellRequestStatusClosed:    0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

var _ SellRequestRepositoryInterface = (*SellRequestRepository)(nil)
