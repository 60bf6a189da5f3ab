// internal/service/newsletter_service.go
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/queue"
	"github.com/autovilla/dealership-backend/internal/repository"
)

type NewsletterService struct {
	SubscriberRepo repository.SubscriberRepositoryInterface
	Queue          queue.Publisher
	Log            zerolog.Logger
}

// Subscribe adds an email to the newsletter. A returning unsubscribed email
// is reactivated instead of duplicated. The welcome email goes out through
// the transactional queue; a queue failure does not fail the subscription.
func (s *NewsletterService) Subscribe(email, name string) (*model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, appErrors.NewValidation("email is required")
	}

	existing, err := s.SubscriberRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	var sub *model.Subscriber
	switch {
	case existing == nil:
		sub = &model.Subscriber{
			ID:               uuid.NewString(),
			Email:            email,
			UnsubscribeToken: uuid.NewString(),
		}
		if name != "" {
			sub.Name = &name
		}
		if err := s.SubscriberRepo.Create(sub); err != nil {
			return nil, fmt.Errorf("creating subscriber: %w", err)
		}
	case existing.UnsubscribedAt != nil:
		if err := s.SubscriberRepo.Reactivate(existing.ID); err != nil {
			return nil, fmt.Errorf("reactivating subscriber: %w", err)
		}
		existing.UnsubscribedAt = nil
		sub = existing
	default:
		// Already active; idempotent.
		return existing, nil
	}

	err = s.Queue.PublishEmailJob(queue.JobWelcomeEmail, queue.WelcomeEmailPayload{
		Email:            sub.Email,
		Name:             sub.DisplayName(),
		UnsubscribeToken: sub.UnsubscribeToken,
	})
	if err != nil {
		s.Log.Warn().Err(err).Str("email", sub.Email).Msg("could not queue welcome email")
	}

	return sub, nil
}

// Unsubscribe marks the subscriber behind a token as opted out.
func (s *NewsletterService) Unsubscribe(token string) error {
	if token == "" {
		return appErrors.NewValidation("token is required")
	}
	sub, err := s.SubscriberRepo.GetByToken(token)
	if err != nil {
		return err
	}
	if sub == nil {
		return appErrors.NewNotFound("subscriber", token)
	}
	if sub.UnsubscribedAt != nil {
		return nil // already opted out
	}
	return s.SubscriberRepo.Unsubscribe(sub.ID)
}

func (s *NewsletterService) List(page, pageSize int, activeOnly bool) ([]*model.Subscriber, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	subscribers, total, err := s.SubscriberRepo.List(offset, pageSize, activeOnly)
	if err != nil {
		return nil, nil, err
	}
	return subscribers, paginationMap(page, pageSize, total), nil
}

func (s *NewsletterService) Delete(id string) error {
	return s.SubscriberRepo.Delete(id)
}
