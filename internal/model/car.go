// internal/model/car.go
package model

import "time"

const (
	CarStatusAvailable = "available"
	CarStatusSold      = "sold"
	CarStatusReserved  = "reserved"
)

type Car struct {
	ID           int        `db:"id" json:"id"`
	Make         string     `db:"make" json:"make"`
	Model        string     `db:"model" json:"model"`
	Year         int        `db:"year" json:"year"`
	Price        float64    `db:"price" json:"price"`
	Mileage      int        `db:"mileage" json:"mileage"`
	FuelType     string     `db:"fuel_type" json:"fuel_type"`
	Transmission string     `db:"transmission" json:"transmission"`
	BodyType     string     `db:"body_type" json:"body_type"`
	Color        string     `db:"color" json:"color"`
	Description  string     `db:"description" json:"description"`
	ImageURL     *string    `db:"image_url" json:"image_url,omitempty"`
	Status       string     `db:"status" json:"status"`
	Featured     bool       `db:"featured" json:"featured"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CarFilter carries listing query parameters through to the repository.
type CarFilter struct {
	Make     string
	BodyType string
	FuelType string
	Status   string
	PriceMin float64
	PriceMax float64
	YearMin  int
	YearMax  int
	Search   string
	SortBy   string // price | year | created_at
	SortDir  string // asc | desc
}
