package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListActiveExcludesUnsubscribed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &SubscriberRepository{DB: db}

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "email", "name", "unsubscribe_token", "subscribed_at", "unsubscribed_at",
	}).
		AddRow("s1", "a@example.com", nil, "t1", now, nil).
		AddRow("s2", "b@example.com", nil, "t2", now, nil)

	// The recipient set must be bounded by the opt-out column.
	mock.ExpectQuery("FROM newsletter_subscribers\\s+WHERE unsubscribed_at IS NULL").
		WillReturnRows(rows)

	subs, err := repo.ListActive()
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.Equal(t, "a@example.com", subs[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnsubscribeSetsTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &SubscriberRepository{DB: db}

	mock.ExpectExec("UPDATE newsletter_subscribers SET unsubscribed_at=NOW\\(\\)").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Unsubscribe("s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
