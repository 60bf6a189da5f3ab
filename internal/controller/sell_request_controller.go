// internal/controller/sell_request_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/service"
)

type SellRequestController struct {
	SellRequestService *service.SellRequestService
}

type sellRequestBody struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone"`
	Make          string  `json:"make" validate:"required"`
	Model         string  `json:"model" validate:"required"`
	Year          int     `json:"year" validate:"required,gte=1900"`
	Mileage       int     `json:"mileage" validate:"gte=0"`
	ExpectedPrice float64 `json:"expected_price"`
	Condition     string  `json:"condition"`
	Message       string  `json:"message"`
	ImageURL      string  `json:"image_url"`
}

func (c *SellRequestController) Create(w http.ResponseWriter, r *http.Request) {
	var body sellRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &model.SellRequest{
		Name:          body.Name,
		Email:         body.Email,
		Phone:         body.Phone,
		Make:          body.Make,
		Model:         body.Model,
		Year:          body.Year,
		Mileage:       body.Mileage,
		ExpectedPrice: body.ExpectedPrice,
		Condition:     body.Condition,
		Message:       body.Message,
	}
	if body.ImageURL != "" {
		req.ImageURL = &body.ImageURL
	}

	if err := c.SellRequestService.Create(r.Context(), req); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, "sell request received", req)
}

func (c *SellRequestController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := r.URL.Query().Get("status")

	requests, pagination, err := c.SellRequestService.List(page, pageSize, status)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"sell_requests": requests,
		"pagination":    pagination,
	})
}

type updateSellStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (c *SellRequestController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid sell request id")
		return
	}

	var body updateSellStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, "status is required")
		return
	}

	if err := c.SellRequestService.UpdateStatus(id, body.Status); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "status updated", nil)
}

func (c *SellRequestController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid sell request id")
		return
	}

	if err := c.SellRequestService.Delete(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "sell request deleted", nil)
}
