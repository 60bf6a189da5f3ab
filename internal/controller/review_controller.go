// internal/controller/review_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/autovilla/dealership-backend/internal/service"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

type reviewRequest struct {
	AuthorName string `json:"author_name" validate:"required"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Content    string `json:"content"`
}

func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	var body reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	review, err := c.ReviewService.Create(body.AuthorName, body.Rating, body.Content)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, "review submitted for approval", review)
}

func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	reviews, pagination, err := c.ReviewService.List(page, pageSize, true)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"reviews":    reviews,
		"pagination": pagination,
	})
}

// ListAll includes unapproved reviews; admin surface.
func (c *ReviewController) ListAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	reviews, pagination, err := c.ReviewService.List(page, pageSize, false)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"reviews":    reviews,
		"pagination": pagination,
	})
}

func (c *ReviewController) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid review id")
		return
	}
	if err := c.ReviewService.Approve(id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "review approved", nil)
}

func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid review id")
		return
	}
	if err := c.ReviewService.Delete(id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "review deleted", nil)
}
