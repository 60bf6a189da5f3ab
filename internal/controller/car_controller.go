// internal/controller/car_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/service"
)

type CarController struct {
	CarService *service.CarService
}

func carFilterFromQuery(r *http.Request) model.CarFilter {
	q := r.URL.Query()
	priceMin, _ := strconv.ParseFloat(q.Get("price_min"), 64)
	priceMax, _ := strconv.ParseFloat(q.Get("price_max"), 64)
	yearMin, _ := strconv.Atoi(q.Get("year_min"))
	yearMax, _ := strconv.Atoi(q.Get("year_max"))

	return model.CarFilter{
		Make:     q.Get("make"),
		BodyType: q.Get("body_type"),
		FuelType: q.Get("fuel_type"),
		Status:   q.Get("status"),
		PriceMin: priceMin,
		PriceMax: priceMax,
		YearMin:  yearMin,
		YearMax:  yearMax,
		Search:   q.Get("search"),
		SortBy:   q.Get("sort_by"),
		SortDir:  q.Get("sort_dir"),
	}
}

func (c *CarController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	cars, pagination, err := c.CarService.List(carFilterFromQuery(r), page, pageSize)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, "", map[string]interface{}{
		"cars":       cars,
		"pagination": pagination,
	})
}

func (c *CarController) Featured(w http.ResponseWriter, r *http.Request) {
	cars, err := c.CarService.ListFeatured()
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", cars)
}

func (c *CarController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid car id")
		return
	}

	car, err := c.CarService.Get(id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "", car)
}

type carRequest struct {
	Make         string  `json:"make" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,gte=1900"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Mileage      int     `json:"mileage" validate:"gte=0"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	BodyType     string  `json:"body_type"`
	Color        string  `json:"color"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	Status       string  `json:"status"`
	Featured     bool    `json:"featured"`
}

func (req *carRequest) toModel() *model.Car {
	car := &model.Car{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Color:        req.Color,
		Description:  req.Description,
		Status:       req.Status,
		Featured:     req.Featured,
	}
	if req.ImageURL != "" {
		car.ImageURL = &req.ImageURL
	}
	return car
}

func (c *CarController) Create(w http.ResponseWriter, r *http.Request) {
	var body carRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	car := body.toModel()
	if err := c.CarService.Create(r.Context(), car); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusCreated, "car created", car)
}

func (c *CarController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid car id")
		return
	}

	var body carRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	car := body.toModel()
	car.ID = id
	if err := c.CarService.Update(r.Context(), car); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "car updated", car)
}

func (c *CarController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		Error(w, http.StatusBadRequest, "invalid car id")
		return
	}

	if err := c.CarService.Delete(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, "car deleted", nil)
}
