// internal/service/broadcast_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/mailer"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/repository"
	"github.com/autovilla/dealership-backend/internal/storage"
)

// BroadcastMailer is the slice of the mail adapter the orchestrator needs.
type BroadcastMailer interface {
	SendBroadcastEmail(ctx context.Context, to, toName, subject, content, imageURL, senderName, unsubscribeToken string) mailer.SendResult
}

type BroadcastService struct {
	BroadcastRepo  repository.BroadcastRepositoryInterface
	SubscriberRepo repository.SubscriberRepositoryInterface
	Mailer         BroadcastMailer
	Images         storage.ImageStore
	BatchSize      int
	Log            zerolog.Logger
}

// SendInput is the validated request body for a broadcast send.
type SendInput struct {
	Subject  string
	Content  string
	ImageURL string // optional; inline data URIs are uploaded first
	SentByID int
}

// SendSummary is returned to the caller after the fan-out completes.
// FailedEmails is reported once and never persisted.
type SendSummary struct {
	Broadcast      *model.Broadcast `json:"broadcast"`
	RecipientCount int              `json:"recipient_count"`
	SuccessCount   int              `json:"success_count"`
	FailureCount   int              `json:"failure_count"`
	FailedEmails   []string         `json:"failed_emails,omitempty"`
}

// Send runs one broadcast campaign: upload image, load the active
// subscriber set, create the pending record, fan out in batches, then write
// the terminal tally in a single update.
//
// Failures before the first send attempt abort the whole operation with no
// record left behind. Per-recipient failures are only counted; one bad
// recipient never aborts its siblings or later batches.
func (s *BroadcastService) Send(ctx context.Context, input SendInput) (*SendSummary, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, appErrors.NewValidation("subject is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, appErrors.NewValidation("content is required")
	}
	if input.SentByID == 0 {
		return nil, appErrors.NewValidation("sender is required")
	}

	// Image upload happens before recipient loading and record creation,
	// so an upload failure leaves no trace.
	imageURL := input.ImageURL
	if imageURL != "" && storage.IsDataURI(imageURL) {
		uploaded, err := s.Images.Upload(ctx, "broadcasts", imageURL)
		if err != nil {
			return nil, fmt.Errorf("uploading broadcast image: %w", err)
		}
		imageURL = uploaded
	}

	subscribers, err := s.SubscriberRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("loading subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		return nil, appErrors.ErrNoRecipients
	}

	b := &model.Broadcast{
		ID:             uuid.NewString(),
		Subject:        input.Subject,
		Content:        input.Content,
		RecipientCount: len(subscribers),
		Status:         model.BroadcastStatusPending,
		SentByID:       input.SentByID,
		SentAt:         time.Now(),
	}
	if imageURL != "" {
		b.ImageURL = &imageURL
	}
	if err := s.BroadcastRepo.Create(b); err != nil {
		return nil, fmt.Errorf("creating broadcast record: %w", err)
	}

	// Best effort; a missing sender just drops the signature line.
	senderName, err := s.BroadcastRepo.GetSenderName(input.SentByID)
	if err != nil {
		s.Log.Warn().Err(err).Int("sent_by_id", input.SentByID).Msg("could not resolve sender name")
		senderName = ""
	}

	batchSize := s.BatchSize
	if batchSize < 1 {
		batchSize = 50
	}

	summary := &SendSummary{
		Broadcast:      b,
		RecipientCount: len(subscribers),
	}

	// Batches run strictly in sequence; sends within a batch run
	// concurrently and report over a channel, so a single loop does all
	// the counting and no mutex is needed.
	for start := 0; start < len(subscribers); start += batchSize {
		end := start + batchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}
		batch := subscribers[start:end]

		results := make(chan mailer.SendResult, len(batch))
		for _, sub := range batch {
			go func(sub model.Subscriber) {
				results <- s.Mailer.SendBroadcastEmail(
					ctx,
					sub.Email, sub.DisplayName(),
					input.Subject, input.Content,
					imageURL, senderName, sub.UnsubscribeToken,
				)
			}(sub)
		}

		for range batch {
			res := <-results
			if res.Success {
				summary.SuccessCount++
			} else {
				summary.FailureCount++
				summary.FailedEmails = append(summary.FailedEmails, res.To)
			}
		}
	}

	// Partial failure still counts as completed; only a total wipeout is
	// marked failed.
	status := model.BroadcastStatusCompleted
	if summary.FailureCount == summary.RecipientCount {
		status = model.BroadcastStatusFailed
	}

	if err := s.BroadcastRepo.Finalize(b.ID, summary.SuccessCount, summary.FailureCount, status); err != nil {
		return nil, fmt.Errorf("finalizing broadcast record: %w", err)
	}
	b.SuccessCount = summary.SuccessCount
	b.FailureCount = summary.FailureCount
	b.Status = status

	s.Log.Info().
		Str("broadcast_id", b.ID).
		Int("recipients", summary.RecipientCount).
		Int("success", summary.SuccessCount).
		Int("failure", summary.FailureCount).
		Str("status", status).
		Msg("broadcast finished")

	return summary, nil
}

func (s *BroadcastService) List(page, pageSize int, status string) ([]*model.Broadcast, map[string]int, error) {
	page, pageSize = clampPage(page, pageSize)
	offset := (page - 1) * pageSize

	broadcasts, total, err := s.BroadcastRepo.List(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}
	return broadcasts, paginationMap(page, pageSize, total), nil
}

func (s *BroadcastService) Get(id string) (*model.Broadcast, string, error) {
	b, err := s.BroadcastRepo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	senderName, err := s.BroadcastRepo.GetSenderName(b.SentByID)
	if err != nil {
		return nil, "", err
	}
	return b, senderName, nil
}

// Delete removes the record and its uploaded image, if any.
func (s *BroadcastService) Delete(ctx context.Context, id string) error {
	b, err := s.BroadcastRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.BroadcastRepo.Delete(id); err != nil {
		return err
	}
	if b.ImageURL != nil {
		if err := s.Images.Delete(ctx, *b.ImageURL); err != nil {
			s.Log.Warn().Err(err).Str("broadcast_id", id).Msg("could not delete broadcast image")
		}
	}
	return nil
}

func (s *BroadcastService) Stats() (*model.BroadcastStats, error) {
	return s.BroadcastRepo.Stats()
}
