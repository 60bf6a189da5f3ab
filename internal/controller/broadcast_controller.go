// internal/controller/broadcast_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/autovilla/dealership-backend/internal/middleware"
	"github.com/autovilla/dealership-backend/internal/service"
)

var validate = validator.New()

type BroadcastController struct {
	BroadcastService *service.BroadcastService
}

type sendBroadcastRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"image_url"`
}

// Send runs a broadcast campaign and reports the per-recipient tally.
func (c *BroadcastController) Send(w http.ResponseWriter, r *http.Request) {
	var body sendBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, "title and content are required")
		return
	}

	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	summary, err := c.BroadcastService.Send(r.Context(), service.SendInput{
		Subject:  body.Title,
		Content:  body.Content,
		ImageURL: body.ImageURL,
		SentByID: claims.AdminID,
	})
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, "broadcast sent", summary)
}

func (c *BroadcastController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := r.URL.Query().Get("status")

	broadcasts, pagination, err := c.BroadcastService.List(page, pageSize, status)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"broadcasts": broadcasts,
		"pagination": pagination,
	})
}

func (c *BroadcastController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	broadcast, senderName, err := c.BroadcastService.Get(id)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"broadcast":   broadcast,
		"sender_name": senderName,
	})
}

func (c *BroadcastController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.BroadcastService.Delete(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "broadcast deleted", nil)
}

func (c *BroadcastController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.BroadcastService.Stats()
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", stats)
}
