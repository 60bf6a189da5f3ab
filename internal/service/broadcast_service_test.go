package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/mailer"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/service"
)

// Mock broadcast repository tracking create/finalize calls
type MockBroadcastRepo struct {
	created     []*model.Broadcast
	finalized   int
	finalStatus string
	finalOK     int
	finalFail   int
}

func (m *MockBroadcastRepo) Create(b *model.Broadcast) error {
	m.created = append(m.created, b)
	return nil
}

func (m *MockBroadcastRepo) Finalize(id string, successCount, failureCount int, status string) error {
	m.finalized++
	m.finalOK = successCount
	m.finalFail = failureCount
	m.finalStatus = status
	return nil
}

func (m *MockBroadcastRepo) GetByID(id string) (*model.Broadcast, error) {
	for _, b := range m.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, appErrors.NewNotFound("broadcast", id)
}

func (m *MockBroadcastRepo) GetSenderName(adminID int) (string, error) { return "Amina Yusuf", nil }

func (m *MockBroadcastRepo) List(offset, limit int, status string) ([]*model.Broadcast, int, error) {
	return []*model.Broadcast{}, 0, nil
}

func (m *MockBroadcastRepo) Delete(id string) error { return nil }

func (m *MockBroadcastRepo) Stats() (*model.BroadcastStats, error) {
	return &model.BroadcastStats{}, nil
}

// Mock subscriber repository serving a fixed active set
type MockSubscriberRepo struct {
	active []model.Subscriber
}

func (m *MockSubscriberRepo) ListActive() ([]model.Subscriber, error) { return m.active, nil }

// Stub implementations to satisfy the interface
func (m *MockSubscriberRepo) Create(s *model.Subscriber) error                   { return nil }
func (m *MockSubscriberRepo) GetByEmail(email string) (*model.Subscriber, error) { return nil, nil }
func (m *MockSubscriberRepo) GetByToken(token string) (*model.Subscriber, error) { return nil, nil }
func (m *MockSubscriberRepo) Reactivate(id string) error                         { return nil }
func (m *MockSubscriberRepo) Unsubscribe(id string) error                        { return nil }
func (m *MockSubscriberRepo) List(offset, limit int, activeOnly bool) ([]*model.Subscriber, int, error) {
	return nil, 0, nil
}
func (m *MockSubscriberRepo) Delete(id string) error    { return nil }
func (m *MockSubscriberRepo) CountActive() (int, error) { return len(m.active), nil }

// Mock mailer failing a chosen set of addresses and tracking in-flight sends
type MockMailer struct {
	mu       sync.Mutex
	failFor  map[string]bool
	calls    int
	inFlight int
	maxBurst int
}

func (m *MockMailer) SendBroadcastEmail(ctx context.Context, to, toName, subject, content, imageURL, senderName, unsubscribeToken string) mailer.SendResult {
	m.mu.Lock()
	m.calls++
	m.inFlight++
	if m.inFlight > m.maxBurst {
		m.maxBurst = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.failFor[to] {
		return mailer.SendResult{To: to, Success: false, Error: "smtp: mailbox unavailable"}
	}
	return mailer.SendResult{To: to, Success: true, MessageID: "msg-" + to}
}

// Mock image store
type MockImageStore struct {
	uploads int
	deletes []string
	failUp  bool
}

func (m *MockImageStore) Upload(ctx context.Context, folder, dataURI string) (string, error) {
	if m.failUp {
		return "", errors.New("s3: access denied")
	}
	m.uploads++
	return "https://cdn.example.com/" + folder + "/img.png", nil
}

func (m *MockImageStore) Delete(ctx context.Context, publicURL string) error {
	m.deletes = append(m.deletes, publicURL)
	return nil
}

func subscribers(n int) []model.Subscriber {
	subs := make([]model.Subscriber, 0, n)
	for i := 0; i < n; i++ {
		subs = append(subs, model.Subscriber{
			ID:               fmt.Sprintf("sub-%d", i),
			Email:            fmt.Sprintf("user%d@example.com", i),
			UnsubscribeToken: fmt.Sprintf("tok-%d", i),
		})
	}
	return subs
}

func newBroadcastService(repo *MockBroadcastRepo, subs []model.Subscriber, m *MockMailer, imgs *MockImageStore) *service.BroadcastService {
	return &service.BroadcastService{
		BroadcastRepo:  repo,
		SubscriberRepo: &MockSubscriberRepo{active: subs},
		Mailer:         m,
		Images:         imgs,
		BatchSize:      50,
	}
}

func TestSendAllSucceed(t *testing.T) {
	repo := &MockBroadcastRepo{}
	mail := &MockMailer{}
	svc := newBroadcastService(repo, subscribers(120), mail, &MockImageStore{})

	summary, err := svc.Send(context.Background(), service.SendInput{
		Subject: "September arrivals", Content: "<p>New stock</p>", SentByID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.RecipientCount != 120 || summary.SuccessCount != 120 || summary.FailureCount != 0 {
		t.Errorf("got counts %d/%d/%d, want 120/120/0",
			summary.RecipientCount, summary.SuccessCount, summary.FailureCount)
	}
	if summary.SuccessCount+summary.FailureCount != summary.RecipientCount {
		t.Errorf("counts do not add up to recipients")
	}
	if mail.calls != 120 {
		t.Errorf("expected 120 send attempts, got %d", mail.calls)
	}
	// Batches run one after another, so in-flight sends never exceed one batch.
	if mail.maxBurst > 50 {
		t.Errorf("expected at most 50 concurrent sends, saw %d", mail.maxBurst)
	}
	if repo.finalized != 1 {
		t.Fatalf("expected exactly one finalize, got %d", repo.finalized)
	}
	if repo.finalStatus != model.BroadcastStatusCompleted {
		t.Errorf("expected status %q, got %q", model.BroadcastStatusCompleted, repo.finalStatus)
	}
	if summary.Broadcast.Status != model.BroadcastStatusCompleted {
		t.Errorf("returned broadcast not marked completed: %q", summary.Broadcast.Status)
	}
}

func TestSendAllFail(t *testing.T) {
	subs := subscribers(10)
	failFor := map[string]bool{}
	for _, s := range subs {
		failFor[s.Email] = true
	}

	repo := &MockBroadcastRepo{}
	svc := newBroadcastService(repo, subs, &MockMailer{failFor: failFor}, &MockImageStore{})

	summary, err := svc.Send(context.Background(), service.SendInput{
		Subject: "Flash sale", Content: "<p>Today only</p>", SentByID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.SuccessCount != 0 || summary.FailureCount != 10 {
		t.Errorf("got counts %d/%d, want 0/10", summary.SuccessCount, summary.FailureCount)
	}
	if repo.finalStatus != model.BroadcastStatusFailed {
		t.Errorf("total failure should finalize as failed, got %q", repo.finalStatus)
	}
	if len(summary.FailedEmails) != 10 {
		t.Errorf("expected 10 failed emails, got %d", len(summary.FailedEmails))
	}
	if repo.finalized != 1 {
		t.Errorf("expected exactly one finalize, got %d", repo.finalized)
	}
}

func TestSendNoSubscribers(t *testing.T) {
	repo := &MockBroadcastRepo{}
	svc := newBroadcastService(repo, nil, &MockMailer{}, &MockImageStore{})

	_, err := svc.Send(context.Background(), service.SendInput{
		Subject: "Empty list", Content: "<p>Hello</p>", SentByID: 1,
	})
	if !errors.Is(err, appErrors.ErrNoRecipients) {
		t.Fatalf("expected ErrNoRecipients, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("no record should be created when there are no subscribers")
	}
	if repo.finalized != 0 {
		t.Errorf("nothing should be finalized when there are no subscribers")
	}
}

func TestSendPartialFailure(t *testing.T) {
	subs := subscribers(3)
	repo := &MockBroadcastRepo{}
	mail := &MockMailer{failFor: map[string]bool{subs[1].Email: true}}
	svc := newBroadcastService(repo, subs, mail, &MockImageStore{})

	summary, err := svc.Send(context.Background(), service.SendInput{
		Subject: "Service reminder", Content: "<p>Book now</p>", SentByID: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.SuccessCount != 2 || summary.FailureCount != 1 {
		t.Errorf("got counts %d/%d, want 2/1", summary.SuccessCount, summary.FailureCount)
	}
	// One failure among many is still a completed broadcast.
	if repo.finalStatus != model.BroadcastStatusCompleted {
		t.Errorf("partial failure should finalize as completed, got %q", repo.finalStatus)
	}
	if len(summary.FailedEmails) != 1 || summary.FailedEmails[0] != subs[1].Email {
		t.Errorf("expected failed list [%s], got %v", subs[1].Email, summary.FailedEmails)
	}
}

func TestSendValidation(t *testing.T) {
	repo := &MockBroadcastRepo{}
	svc := newBroadcastService(repo, subscribers(5), &MockMailer{}, &MockImageStore{})

	cases := []service.SendInput{
		{Subject: "", Content: "<p>x</p>", SentByID: 1},
		{Subject: "Hi", Content: "   ", SentByID: 1},
		{Subject: "Hi", Content: "<p>x</p>", SentByID: 0},
	}
	for _, input := range cases {
		if _, err := svc.Send(context.Background(), input); !appErrors.IsValidation(err) {
			t.Errorf("input %+v: expected validation error, got %v", input, err)
		}
	}
	if len(repo.created) != 0 {
		t.Errorf("invalid input must not create a record")
	}
}

func TestSendImageUploadFailureAbortsEarly(t *testing.T) {
	repo := &MockBroadcastRepo{}
	mail := &MockMailer{}
	svc := newBroadcastService(repo, subscribers(5), mail, &MockImageStore{failUp: true})

	_, err := svc.Send(context.Background(), service.SendInput{
		Subject:  "With image",
		Content:  "<p>x</p>",
		ImageURL: "data:image/png;base64,iVBOR",
		SentByID: 1,
	})
	if err == nil {
		t.Fatal("expected an error from the failed upload")
	}
	if len(repo.created) != 0 {
		t.Errorf("upload failure must not leave a record behind")
	}
	if mail.calls != 0 {
		t.Errorf("upload failure must not send any email, sent %d", mail.calls)
	}
}

func TestSendUploadsDataURI(t *testing.T) {
	repo := &MockBroadcastRepo{}
	imgs := &MockImageStore{}
	svc := newBroadcastService(repo, subscribers(2), &MockMailer{}, imgs)

	summary, err := svc.Send(context.Background(), service.SendInput{
		Subject:  "With image",
		Content:  "<p>x</p>",
		ImageURL: "data:image/png;base64,iVBOR",
		SentByID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imgs.uploads != 1 {
		t.Errorf("expected one upload, got %d", imgs.uploads)
	}
	if summary.Broadcast.ImageURL == nil || *summary.Broadcast.ImageURL != "https://cdn.example.com/broadcasts/img.png" {
		t.Errorf("broadcast should carry the uploaded URL, got %v", summary.Broadcast.ImageURL)
	}
}

func TestSendUnevenLastBatch(t *testing.T) {
	// 120 recipients at batch size 50: two full batches and one of 20.
	repo := &MockBroadcastRepo{}
	mail := &MockMailer{}
	svc := newBroadcastService(repo, subscribers(120), mail, &MockImageStore{})

	summary, err := svc.Send(context.Background(), service.SendInput{
		Subject: "Batching", Content: "<p>x</p>", SentByID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.SuccessCount != 120 {
		t.Errorf("every recipient must be attempted exactly once, got %d", summary.SuccessCount)
	}
	if mail.calls != 120 {
		t.Errorf("expected 120 attempts, got %d", mail.calls)
	}
}

func TestDeleteRemovesImage(t *testing.T) {
	url := "https://cdn.example.com/broadcasts/img.png"
	repo := &MockBroadcastRepo{created: []*model.Broadcast{
		{ID: "b1", ImageURL: &url},
	}}
	imgs := &MockImageStore{}
	svc := newBroadcastService(repo, nil, &MockMailer{}, imgs)

	if err := svc.Delete(context.Background(), "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(imgs.deletes) != 1 || imgs.deletes[0] != url {
		t.Errorf("expected image %s deleted, got %v", url, imgs.deletes)
	}
}
