// internal/controller/auth_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/middleware"
	"github.com/autovilla/dealership-backend/internal/service"
)

type AuthController struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, admin, err := c.AuthService.Login(body.Email, body.Password)
	if err != nil {
		// Credential failures come back as validation errors; report
		// them as 401 rather than 400.
		if appErrors.IsValidation(err) {
			Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "logged in", map[string]interface{}{
		"token": token,
		"admin": admin,
	})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	admin, err := c.AuthService.GetAdmin(claims.AdminID)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", admin)
}
