// internal/controller/admin_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/autovilla/dealership-backend/internal/middleware"
	"github.com/autovilla/dealership-backend/internal/service"
)

type AdminController struct {
	AdminService *service.AdminService
}

func (c *AdminController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	admins, pagination, err := c.AdminService.List(page, pageSize)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"admins":     admins,
		"pagination": pagination,
	})
}

type createAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

func (c *AdminController) Create(w http.ResponseWriter, r *http.Request) {
	var body createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := c.AdminService.Create(body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, "admin created", admin)
}

type updateAdminRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required"`
	Active bool   `json:"active"`
}

func (c *AdminController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid admin id")
		return
	}

	var body updateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := c.AdminService.Update(id, body.Name, body.Email, body.Role, body.Active)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "admin updated", admin)
}

func (c *AdminController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid admin id")
		return
	}

	claims, _ := middleware.ClaimsFrom(r.Context())
	callerID := 0
	if claims != nil {
		callerID = claims.AdminID
	}

	if err := c.AdminService.Delete(id, callerID); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "admin deleted", nil)
}
