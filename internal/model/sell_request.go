// internal/model/sell_request.go
package model

import "time"

const (
	SellRequestStatusNew       = "new"
	SellRequestStatusContacted = "contacted"
	SellRequestStatusClosed    = "closed"
)

// SellRequest is a "sell your car" intake form submission.
type SellRequest struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Make          string    `db:"make" json:"make"`
	Model         string    `db:"model" json:"model"`
	Year          int       `db:"year" json:"year"`
	Mileage       int       `db:"mileage" json:"mileage"`
	ExpectedPrice float64   `db:"expected_price" json:"expected_price"`
	Condition     string    `db:"condition" json:"condition"`
	Message       string    `db:"message" json:"message"`
	ImageURL      *string   `db:"image_url" json:"image_url,omitempty"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
