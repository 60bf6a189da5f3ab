package service_test

import (
	"testing"
	"time"

	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/service"
)

// Mock subscriber repository keyed by email, tracking mutations
type MockNewsletterRepo struct {
	byEmail     map[string]*model.Subscriber
	created     int
	reactivated []string
	opted       []string
}

func (m *MockNewsletterRepo) GetByEmail(email string) (*model.Subscriber, error) {
	return m.byEmail[email], nil
}

func (m *MockNewsletterRepo) GetByToken(token string) (*model.Subscriber, error) {
	for _, s := range m.byEmail {
		if s.UnsubscribeToken == token {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockNewsletterRepo) Create(s *model.Subscriber) error {
	m.created++
	if m.byEmail == nil {
		m.byEmail = map[string]*model.Subscriber{}
	}
	m.byEmail[s.Email] = s
	return nil
}

func (m *MockNewsletterRepo) Reactivate(id string) error {
	m.reactivated = append(m.reactivated, id)
	return nil
}

func (m *MockNewsletterRepo) Unsubscribe(id string) error {
	m.opted = append(m.opted, id)
	return nil
}

// Stub implementations to satisfy the interface
func (m *MockNewsletterRepo) ListActive() ([]model.Subscriber, error) { return nil, nil }
func (m *MockNewsletterRepo) List(offset, limit int, activeOnly bool) ([]*model.Subscriber, int, error) {
	return nil, 0, nil
}
func (m *MockNewsletterRepo) Delete(id string) error    { return nil }
func (m *MockNewsletterRepo) CountActive() (int, error) { return 0, nil }

// Mock publisher recording queued jobs
type MockPublisher struct {
	jobs []string
	fail bool
}

func (m *MockPublisher) PublishEmailJob(kind string, payload any) error {
	if m.fail {
		return errAMQPDown
	}
	m.jobs = append(m.jobs, kind)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

var errAMQPDown = &amqpDownError{}

type amqpDownError struct{}

func (e *amqpDownError) Error() string { return "amqp: connection closed" }

func TestSubscribeNewEmail(t *testing.T) {
	repo := &MockNewsletterRepo{}
	pub := &MockPublisher{}
	svc := &service.NewsletterService{SubscriberRepo: repo, Queue: pub}

	sub, err := svc.Subscribe("  Dealer.Fan@Example.COM ", "Dealer Fan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Email != "dealer.fan@example.com" {
		t.Errorf("email should be normalized, got %q", sub.Email)
	}
	if sub.ID == "" || sub.UnsubscribeToken == "" {
		t.Errorf("new subscriber must get an id and token")
	}
	if repo.created != 1 {
		t.Errorf("expected one create, got %d", repo.created)
	}
	if len(pub.jobs) != 1 || pub.jobs[0] != "welcome_email" {
		t.Errorf("expected one welcome_email job, got %v", pub.jobs)
	}
}

func TestSubscribeActiveIsIdempotent(t *testing.T) {
	existing := &model.Subscriber{ID: "s1", Email: "a@b.com", UnsubscribeToken: "tok"}
	repo := &MockNewsletterRepo{byEmail: map[string]*model.Subscriber{"a@b.com": existing}}
	pub := &MockPublisher{}
	svc := &service.NewsletterService{SubscriberRepo: repo, Queue: pub}

	sub, err := svc.Subscribe("a@b.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID != "s1" {
		t.Errorf("expected the existing subscriber back, got %q", sub.ID)
	}
	if repo.created != 0 || len(repo.reactivated) != 0 {
		t.Errorf("active subscriber must not be created or reactivated again")
	}
	if len(pub.jobs) != 0 {
		t.Errorf("no welcome email for an already active subscriber, got %v", pub.jobs)
	}
}

func TestSubscribeReactivates(t *testing.T) {
	gone := time.Now().Add(-24 * time.Hour)
	existing := &model.Subscriber{ID: "s2", Email: "back@b.com", UnsubscribeToken: "tok2", UnsubscribedAt: &gone}
	repo := &MockNewsletterRepo{byEmail: map[string]*model.Subscriber{"back@b.com": existing}}
	pub := &MockPublisher{}
	svc := &service.NewsletterService{SubscriberRepo: repo, Queue: pub}

	sub, err := svc.Subscribe("back@b.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.reactivated) != 1 || repo.reactivated[0] != "s2" {
		t.Errorf("expected s2 reactivated, got %v", repo.reactivated)
	}
	if sub.UnsubscribedAt != nil {
		t.Errorf("returned subscriber should be active again")
	}
	if len(pub.jobs) != 1 {
		t.Errorf("reactivation should queue a welcome email")
	}
}

func TestSubscribeSurvivesQueueFailure(t *testing.T) {
	repo := &MockNewsletterRepo{}
	svc := &service.NewsletterService{SubscriberRepo: repo, Queue: &MockPublisher{fail: true}}

	if _, err := svc.Subscribe("x@y.com", ""); err != nil {
		t.Fatalf("queue failure must not fail the subscription: %v", err)
	}
	if repo.created != 1 {
		t.Errorf("subscriber should still be persisted")
	}
}

func TestUnsubscribe(t *testing.T) {
	existing := &model.Subscriber{ID: "s3", Email: "c@d.com", UnsubscribeToken: "tok3"}
	repo := &MockNewsletterRepo{byEmail: map[string]*model.Subscriber{"c@d.com": existing}}
	svc := &service.NewsletterService{SubscriberRepo: repo, Queue: &MockPublisher{}}

	if err := svc.Unsubscribe("tok3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.opted) != 1 || repo.opted[0] != "s3" {
		t.Errorf("expected s3 unsubscribed, got %v", repo.opted)
	}

	if err := svc.Unsubscribe("missing"); !appErrors.IsNotFound(err) {
		t.Errorf("unknown token should be not found, got %v", err)
	}
}
