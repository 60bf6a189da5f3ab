// internal/repository/broadcast_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

type BroadcastRepositoryInterface interface {
	Create(b *model.Broadcast) error
	// Finalize writes the terminal counts and status in a single update.
	Finalize(id string, successCount, failureCount int, status string) error
	GetByID(id string) (*model.Broadcast, error)
	// GetSenderName resolves the display name of the admin who sent a
	// broadcast. Missing admins resolve to "".
	GetSenderName(adminID int) (string, error)
	List(offset, limit int, status string) ([]*model.Broadcast, int, error)
	Delete(id string) error
	Stats() (*model.BroadcastStats, error)
}

type BroadcastRepository struct {
	DB *sql.DB
}

func (r *BroadcastRepository) Create(b *model.Broadcast) error {
	b.CreatedAt = time.Now()
	if b.Status == "" {
		b.Status = model.BroadcastStatusPending
	}
	query := `
        INSERT INTO broadcasts
            (id, subject, content, image_url, recipient_count, success_count, failure_count, status, sent_by_id, sent_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err := r.DB.Exec(query,
		b.ID, b.Subject, b.Content, b.ImageURL,
		b.RecipientCount, b.SuccessCount, b.FailureCount,
		b.Status, b.SentByID, b.SentAt, b.CreatedAt,
	)
	return err
}

func (r *BroadcastRepository) Finalize(id string, successCount, failureCount int, status string) error {
	query := `
        UPDATE broadcasts
        SET success_count=$1, failure_count=$2, status=$3, updated_at=NOW()
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, successCount, failureCount, status, id)
	return err
}

func (r *BroadcastRepository) GetByID(id string) (*model.Broadcast, error) {
	query := `
        SELECT id, subject, content, image_url, recipient_count, success_count, failure_count, status, sent_by_id, sent_at, created_at, updated_at
        FROM broadcasts WHERE id=$1
    `
	var b model.Broadcast
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.Subject, &b.Content, &b.ImageURL,
		&b.RecipientCount, &b.SuccessCount, &b.FailureCount,
		&b.Status, &b.SentByID, &b.SentAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewNotFound("broadcast", id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *BroadcastRepository) GetSenderName(adminID int) (string, error) {
	var name string
	err := r.DB.QueryRow(`SELECT name FROM admins WHERE id=$1`, adminID).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return name, nil
}

func (r *BroadcastRepository) List(offset, limit int, status string) ([]*model.Broadcast, int, error) {
	broadcasts := []*model.Broadcast{}
	query := `
        SELECT id, subject, content, image_url, recipient_count, success_count, failure_count, status, sent_by_id, sent_at, created_at, updated_at
        FROM broadcasts WHERE 1=1
    `
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY sent_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		b := &model.Broadcast{}
		if err := rows.Scan(
			&b.ID, &b.Subject, &b.Content, &b.ImageURL,
			&b.RecipientCount, &b.SuccessCount, &b.FailureCount,
			&b.Status, &b.SentByID, &b.SentAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		broadcasts = append(broadcasts, b)
	}

	countQuery := `SELECT COUNT(*) FROM broadcasts WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return broadcasts, total, nil
}

func (r *BroadcastRepository) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM broadcasts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewNotFound("broadcast", id)
	}
	return nil
}

func (r *BroadcastRepository) Stats() (*model.BroadcastStats, error) {
	stats := &model.BroadcastStats{
		StatusBreakdown: map[string]int{
			model.BroadcastStatusDraft:     0,
			model.BroadcastStatusPending:   0,
			model.BroadcastStatusCompleted: 0,
			model.BroadcastStatusFailed:    0,
		},
	}

	query := `
        SELECT status, COUNT(*), COALESCE(SUM(recipient_count),0), COALESCE(SUM(success_count),0), COALESCE(SUM(failure_count),0)
        FROM broadcasts
        GROUP BY status
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, recipients, success, failure int
		if err := rows.Scan(&status, &count, &recipients, &success, &failure); err != nil {
			return nil, err
		}
		if _, ok := stats.StatusBreakdown[status]; ok {
			stats.StatusBreakdown[status] = count
		}
		stats.TotalBroadcasts += count
		stats.TotalRecipients += recipients
		stats.TotalSuccess += success
		stats.TotalFailure += failure
	}

	if stats.TotalRecipients > 0 {
		stats.SuccessRate = float64(stats.TotalSuccess) / float64(stats.TotalRecipients) * 100
	}
	return stats, nil
}

var _ BroadcastRepositoryInterface = (*BroadcastRepository)(nil)
