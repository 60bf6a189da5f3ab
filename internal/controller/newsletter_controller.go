// internal/controller/newsletter_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autovilla/dealership-backend/internal/service"
)

type NewsletterController struct {
	NewsletterService *service.NewsletterService
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

func (c *NewsletterController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var body subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	sub, err := c.NewsletterService.Subscribe(body.Email, body.Name)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, "subscribed", sub)
}

func (c *NewsletterController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	if err := c.NewsletterService.Unsubscribe(token); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "unsubscribed", nil)
}

func (c *NewsletterController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	activeOnly := r.URL.Query().Get("active") == "true"

	subscribers, pagination, err := c.NewsletterService.List(page, pageSize, activeOnly)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"subscribers": subscribers,
		"pagination":  pagination,
	})
}

func (c *NewsletterController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.NewsletterService.Delete(id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "subscriber deleted", nil)
}
