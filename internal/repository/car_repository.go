// internal/repository/car_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type CarRepositoryInterface interface {
	List(filter model.CarFilter, offset, limit int) ([]*model.Car, int, error)
	ListFeatured(limit int) ([]*model.Car, error)
	GetByID(id int) (*model.Car, error)
	Create(c *model.Car) error
	Update(c *model.Car) error
	Delete(id int) error
	CountByStatus() (map[string]int, error)
	CountFeatured() (int, error)
}

type CarRepository struct {
	DB *sql.DB
}

const carColumns = `id, make, model, year, price, mileage, fuel_type, transmission, body_type, color, description, image_url, status, featured, created_at, updated_at`

func scanCar(row interface{ Scan(...interface{}) error }) (*model.Car, error) {
	var c model.Car
	err := row.Scan(
		&c.ID, &c.Make, &c.Model, &c.Year, &c.Price, &c.Mileage,
		&c.FuelType, &c.Transmission, &c.BodyType, &c.Color,
		&c.Description, &c.ImageURL, &c.Status, &c.Featured,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// buildCarWhere assembles the dynamic WHERE clause shared by the listing
// and count queries.
func buildCarWhere(filter model.CarFilter) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	add := func(clause string, value interface{}) {
		where += fmt.Sprintf(clause, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.Make != "" {
		add(" AND make ILIKE $%d", filter.Make)
	}
	if filter.BodyType != "" {
		add(" AND body_type=$%d", filter.BodyType)
	}
	if filter.FuelType != "" {
		add(" AND fuel_type=$%d", filter.FuelType)
	}
	if filter.Status != "" {
		add(" AND status=$%d", filter.Status)
	}
	if filter.PriceMin > 0 {
		add(" AND price >= $%d", filter.PriceMin)
	}
	if filter.PriceMax > 0 {
		add(" AND price <= $%d", filter.PriceMax)
	}
	if filter.YearMin > 0 {
		add(" AND year >= $%d", filter.YearMin)
	}
	if filter.YearMax > 0 {
		add(" AND year <= $%d", filter.YearMax)
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (make ILIKE $%d OR model ILIKE $%d OR description ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	return where, args
}

func carOrderBy(filter model.CarFilter) string {
	col := "created_at"
	switch filter.SortBy {
	case "price":
		col = "price"
	case "year":
		col = "year"
	}
	dir := "DESC"
	if filter.SortDir == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id DESC", col, dir)
}

func (r *CarRepository) List(filter model.CarFilter, offset, limit int) ([]*model.Car, int, error) {
	where, args := buildCarWhere(filter)

	query := `SELECT ` + carColumns + ` FROM cars` + where + carOrderBy(filter)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	listArgs := append(append([]interface{}{}, args...), limit, offset)

	rows, err := r.DB.Query(query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cars := []*model.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, 0, err
		}
		cars = append(cars, c)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM cars`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}

func (r *CarRepository) ListFeatured(limit int) ([]*model.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE featured=true AND status=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.DB.Query(query, model.CarStatusAvailable, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []*model.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) GetByID(id int) (*model.Car, error) {
	c, err := scanCar(r.DB.QueryRow(`SELECT `+carColumns+` FROM cars WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, appErrors.NewNotFound("car", strconv.Itoa(id))
	}
	return c, err
}

func (r *CarRepository) Create(c *model.Car) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.CarStatusAvailable
	}
	query := `
        INSERT INTO cars (make, model, year, price, mileage, fuel_type, transmission, body_type, color, description, image_url, status, featured, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.Make, c.Model, c.Year, c.Price, c.Mileage,
		c.FuelType, c.Transmission, c.BodyType, c.Color,
		c.Description, c.ImageURL, c.Status, c.Featured, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *CarRepository) Update(c *model.Car) error {
	query := `
        UPDATE cars
        SET make=$1, model=$2, year=$3, price=$4, mileage=$5, fuel_type=$6, transmission=$7,
            body_type=$8, color=$9, description=$10, image_url=$11, status=$12, featured=$13, updated_at=NOW()
        WHERE id=$14
    `
	res, err := r.DB.Exec(query,
		c.Make, c.Model, c.Year, c.Price, c.Mileage,
		c.FuelType, c.Transmission, c.BodyType, c.Color,
		c.Description, c.ImageURL, c.Status, c.Featured, c.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("car", strconv.Itoa(c.ID))
	}
	return nil
}

func (r *CarRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM cars WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("car", strconv.Itoa(id))
	}
	return nil
}

func (r *CarRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM cars GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{
		model.CarStatusAvailable: 0,
		model.CarStatusSold:      0,
		model.CarStatusReserved:  0,
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

func (r *CarRepository) CountFeatured() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM cars WHERE featured=true`).Scan(&count)
	return count, err
}

var _ CarRepositoryInterface = (*CarRepository)(nil)
