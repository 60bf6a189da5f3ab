// internal/model/review.go
package model

import "time"

type Review struct {
	ID         int       `db:"id" json:"id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	Rating     int       `db:"rating" json:"rating"`
	Content    string    `db:"content" json:"content"`
	Approved   bool      `db:"approved" json:"approved"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
