// internal/service/admin_service.go
package service

import (
	"strings"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/repository"
)

type AdminService struct {
	AdminRepo repository.AdminRepositoryInterface
}

func (s *AdminService) List(page, pageSize int) ([]*model.Admin, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	admins, total, err := s.AdminRepo.List(offset, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return admins, paginationMap(page, pageSize, total), nil
}

func (s *AdminService) Create(name, email, password, role string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !model.ValidRole(role) {
		return nil, appErrors.NewValidation("unknown role: %s", role)
	}

	existing, err := s.AdminRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewValidation("email already in use")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.AdminRepo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) Update(id int, name, email, role string, active bool) (*model.Admin, error) {
	if !model.ValidRole(role) {
		return nil, appErrors.NewValidation("unknown role: %s", role)
	}

	admin, err := s.AdminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	admin.Name = name
	admin.Email = strings.ToLower(strings.TrimSpace(email))
	admin.Role = role
	admin.Active = active

	if err := s.AdminRepo.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Delete removes a staff account. Admins cannot delete themselves.
func (s *AdminService) Delete(id, callerID int) error {
	if id == callerID {
		return appErrors.NewValidation("cannot delete your own account")
	}
	return s.AdminRepo.Delete(id)
}
