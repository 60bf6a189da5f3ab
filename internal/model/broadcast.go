// internal/model/broadcast.go
package model

import "time"

// Broadcast status lifecycle: draft -> pending -> completed | failed.
// A record reaches its terminal state in a single update and never changes
// again; "failed" means every recipient failed.
const (
	BroadcastStatusDraft     = "draft"
	BroadcastStatusPending   = "pending"
	BroadcastStatusCompleted = "completed"
	BroadcastStatusFailed    = "failed"
)

type Broadcast struct {
	ID             string     `db:"id" json:"id"`
	Subject        string     `db:"subject" json:"subject"`
	Content        string     `db:"content" json:"content"`
	ImageURL       *string    `db:"image_url" json:"image_url,omitempty"`
	RecipientCount int        `db:"recipient_count" json:"recipient_count"`
	SuccessCount   int        `db:"success_count" json:"success_count"`
	FailureCount   int        `db:"failure_count" json:"failure_count"`
	Status         string     `db:"status" json:"status"`
	SentByID       int        `db:"sent_by_id" json:"sent_by_id"`
	SentAt         time.Time  `db:"sent_at" json:"sent_at"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// BroadcastStats aggregates counters across all broadcast records.
type BroadcastStats struct {
	TotalBroadcasts int            `json:"total_broadcasts"`
	TotalRecipients int            `json:"total_recipients"`
	TotalSuccess    int            `json:"total_success"`
	TotalFailure    int            `json:"total_failure"`
	SuccessRate     float64        `json:"success_rate"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
}
