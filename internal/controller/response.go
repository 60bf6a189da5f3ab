// internal/controller/response.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
)

// JSON writes the uniform response envelope used across the API.
func JSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 400,
		"message": message,
		"data":    data,
	})
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, message, nil)
}

// ServiceError maps application errors onto HTTP statuses: validation and
// empty-recipient errors are the client's fault, missing records are 404,
// everything else is a 500.
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case appErrors.IsValidation(err), errors.Is(err, appErrors.ErrNoRecipients):
		Error(w, http.StatusBadRequest, err.Error())
	case appErrors.IsNotFound(err):
		Error(w, http.StatusNotFound, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}
