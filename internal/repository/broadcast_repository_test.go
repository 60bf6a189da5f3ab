package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
)

func TestBroadcastCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &BroadcastRepository{DB: db}

	mock.ExpectExec("INSERT INTO broadcasts").
		WithArgs(
			"b1", "Subject", "<p>Body</p>", nil,
			10, 0, 0, model.BroadcastStatusPending, 1,
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b := &model.Broadcast{
		ID:             "b1",
		Subject:        "Subject",
		Content:        "<p>Body</p>",
		RecipientCount: 10,
		SentByID:       1,
		SentAt:         time.Now(),
	}
	require.NoError(t, repo.Create(b))
	assert.Equal(t, model.BroadcastStatusPending, b.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBroadcastFinalize(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &BroadcastRepository{DB: db}

	mock.ExpectExec("UPDATE broadcasts").
		WithArgs(95, 5, model.BroadcastStatusCompleted, "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Finalize("b1", 95, 5, model.BroadcastStatusCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBroadcastGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &BroadcastRepository{DB: db}

	mock.ExpectQuery("FROM broadcasts WHERE id=").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID("missing")
	assert.True(t, appErrors.IsNotFound(err), "expected not found, got %v", err)
}

func TestBroadcastListFiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &BroadcastRepository{DB: db}

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "subject", "content", "image_url",
		"recipient_count", "success_count", "failure_count",
		"status", "sent_by_id", "sent_at", "created_at", "updated_at",
	}).AddRow("b2", "S", "C", nil, 5, 0, 5, model.BroadcastStatusFailed, 1, now, now, nil)

	mock.ExpectQuery("SELECT id, subject, content").
		WithArgs(model.BroadcastStatusFailed, 20, 0).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM broadcasts WHERE 1=1 AND status=").
		WithArgs(model.BroadcastStatusFailed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	broadcasts, total, err := repo.List(0, 20, model.BroadcastStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, broadcasts, 1)
	assert.Equal(t, "b2", broadcasts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBroadcastStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &BroadcastRepository{DB: db}

	rows := sqlmock.NewRows([]string{"status", "count", "recipients", "success", "failure"}).
		AddRow(model.BroadcastStatusCompleted, 4, 400, 380, 20).
		AddRow(model.BroadcastStatusFailed, 1, 10, 0, 10)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\)").WillReturnRows(rows)

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalBroadcasts)
	assert.Equal(t, 410, stats.TotalRecipients)
	assert.Equal(t, 380, stats.TotalSuccess)
	assert.Equal(t, 30, stats.TotalFailure)
	assert.InDelta(t, 92.68, stats.SuccessRate, 0.01)
	assert.Equal(t, 4, stats.StatusBreakdown[model.BroadcastStatusCompleted])
	assert.Equal(t, 1, stats.StatusBreakdown[model.BroadcastStatusFailed])
}
