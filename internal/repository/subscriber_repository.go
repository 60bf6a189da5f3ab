// internal/repository/subscriber_repository.go
package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type SubscriberRepositoryInterface interface {
	Create(s *model.Subscriber) error
	GetByEmail(email string) (*model.Subscriber, error)
	GetByToken(token string) (*model.Subscriber, error)
	// Reactivate clears the unsubscribe timestamp for a returning email.
	Reactivate(id string) error
	Unsubscribe(id string) error
	// ListActive returns every subscriber with no unsubscribe timestamp.
	// This is the broadcast recipient set.
	ListActive() ([]model.Subscriber, error)
	List(offset, limit int, activeOnly bool) ([]*model.Subscriber, int, error)
	Delete(id string) error
	CountActive() (int, error)
}

type SubscriberRepository struct {
	DB *sql.DB
}

func (r *SubscriberRepository) Create(s *model.Subscriber) error {
	s.SubscribedAt = time.Now()
	query := `
        INSERT INTO newsletter_subscribers (id, email, name, unsubscribe_token, subscribed_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.DB.Exec(query, s.ID, s.Email, s.Name, s.UnsubscribeToken, s.SubscribedAt)
	return err
}

func (r *SubscriberRepository) GetByEmail(email string) (*model.Subscriber, error) {
	query := `
        SELECT id, email, name, unsubscribe_token, subscribed_at, unsubscribed_at
        FROM newsletter_subscribers WHERE email=$1
    `
	var s model.Subscriber
	err := r.DB.QueryRow(query, email).Scan(
		&s.ID, &s.Email, &s.Name, &s.UnsubscribeToken, &s.SubscribedAt, &s.UnsubscribedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubscriberRepository) GetByToken(token string) (*model.Subscriber, error) {
	query := `
        SELECT id, email, name, unsubscribe_token, subscribed_at, unsubscribed_at
        FROM newsletter_subscribers WHERE unsubscribe_token=$1
    `
	var s model.Subscriber
	err := r.DB.QueryRow(query, token).Scan(
		&s.ID, &s.Email, &s.Name, &s.UnsubscribeToken, &s.SubscribedAt, &s.UnsubscribedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubscriberRepository) Reactivate(id string) error {
	query := `UPDATE newsletter_subscribers SET unsubscribed_at=NULL, subscribed_at=NOW() WHERE id=$1`
	_, err := r.DB.Exec(query, id)
	return err
}

func (r *SubscriberRepository) Unsubscribe(id string) error {
	query := `UPDATE newsletter_subscribers SET unsubscribed_at=NOW() WHERE id=$1`
	_, err := r.DB.Exec(query, id)
	return err
}

func (r *SubscriberRepository) ListActive() ([]model.Subscriber, error) {
	query := `
        SELECT id, email, name, unsubscribe_token, subscribed_at, unsubscribed_at
        FROM newsletter_subscribers
        WHERE unsubscribed_at IS NULL
        ORDER BY subscribed_at
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []model.Subscriber{}
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.UnsubscribeToken, &s.SubscribedAt, &s.UnsubscribedAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}

func (r *SubscriberRepository) List(offset, limit int, activeOnly bool) ([]*model.Subscriber, int, error) {
	subscribers := []*model.Subscriber{}
	query := `
        SELECT id, email, name, unsubscribe_token, subscribed_at, unsubscribed_at
        FROM newsletter_subscribers WHERE 1=1
    `
	countQuery := `SELECT COUNT(*) FROM newsletter_subscribers WHERE 1=1`
	if activeOnly {
		query += " AND unsubscribed_at IS NULL"
		countQuery += " AND unsubscribed_at IS NULL"
	}
	query += " ORDER BY subscribed_at DESC LIMIT $1 OFFSET $2"

	rows, err := r.DB.Query(query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		s := &model.Subscriber{}
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.UnsubscribeToken, &s.SubscribedAt, &s.UnsubscribedAt); err != nil {
			return nil, 0, err
		}
		subscribers = append(subscribers, s)
	}

	var total int
	if err := r.DB.QueryRow(countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	return subscribers, total, nil
}

func (r *SubscriberRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM newsletter_subscribers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("subscriber", id)
	}
	return nil
}

func (r *SubscriberRepository) CountActive() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM newsletter_subscribers WHERE unsubscribed_at IS NULL`).Scan(&count)
	return count, err
}

var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)
