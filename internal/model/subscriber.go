// internal/model/subscriber.go
package model

import "time"

// Subscriber is a newsletter entry. A non-nil UnsubscribedAt excludes it
// from every broadcast recipient set.
type Subscriber struct {
	ID               string     `db:"id" json:"id"`
	Email            string     `db:"email" json:"email"`
	Name             *string    `db:"name" json:"name,omitempty"`
	UnsubscribeToken string     `db:"unsubscribe_token" json:"-"`
	SubscribedAt     time.Time  `db:"subscribed_at" json:"subscribed_at"`
	UnsubscribedAt   *time.Time `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`
}

// DisplayName returns the subscriber's name, or the local part of the email
// when no name was given.
func (s *Subscriber) DisplayName() string {
	if s.Name != nil && *s.Name != "" {
		return *s.Name
	}
	for i := 0; i < len(s.Email); i++ {
		if s.Email[i] == '@' {
			return s.Email[:i]
		}
	}
	return s.Email
}
