// internal/repository/admin_repository.go
package repository

import (
	"database/sql"
	"strconv"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type AdminRepositoryInterface interface {
	GetByEmail(email string) (*model.Admin, error)
	GetByID(id int) (*model.Admin, error)
	List(offset, limit int) ([]*model.Admin, int, error)
	Create(a *model.Admin) error
	Update(a *model.Admin) error
	Delete(id int) error
}

type AdminRepository struct {
	DB *sql.DB
}

const adminColumns = `id, name, email, password_hash, role, active, created_at, updated_at`

func scanAdmin(row interface{ Scan(...interface{}) error }) (*model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByEmail(email string) (*model.Admin, error) {
	a, err := scanAdmin(r.DB.QueryRow(`SELECT `+adminColumns+` FROM admins WHERE email=$1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *AdminRepository) GetByID(id int) (*model.Admin, error) {
	a, err := scanAdmin(r.DB.QueryRow(`SELECT `+adminColumns+` FROM admins WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, appErrors.NewNotFound("admin", strconv.Itoa(id))
	}
	return a, err
}

func (r *AdminRepository) List(offset, limit int) ([]*model.Admin, int, error) {
	rows, err := r.DB.Query(`SELECT `+adminColumns+` FROM admins ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	admins := []*model.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, 0, err
		}
		admins = append(admins, a)
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM admins`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

func (r *AdminRepository) Create(a *model.Admin) error {
	a.CreatedAt = time.Now()
	query := `
        INSERT INTO admins (name, email, password_hash, role, active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.DB.QueryRow(query, a.Name, a.Email, a.PasswordHash, a.Role, a.Active, a.CreatedAt).Scan(&a.ID)
}

func (r *AdminRepository) Update(a *model.Admin) error {
	query := `
        UPDATE admins
        SET name=$1, email=$2, role=$3, active=$4, updated_at=NOW()
        WHERE id=$5
    `
	res, err := r.DB.Exec(query, a.Name, a.Email, a.Role, a.Active, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("admin", strconv.Itoa(a.ID))
	}
	return nil
}

func (r *AdminRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM admins WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("admin", strconv.Itoa(id))
	}
	return nil
}

var _ AdminRepositoryInterface = (*AdminRepository)(nil)
