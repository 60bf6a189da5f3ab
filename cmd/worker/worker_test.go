package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/streadway/amqp"

	"github.com/autovilla/dealership-backend/internal/mailer"
	"github.com/autovilla/dealership-backend/internal/queue"
)

// Capture sender recording the last message, optionally failing
type captureSender struct {
	last mailer.Message
	fail bool
}

func (c *captureSender) Send(ctx context.Context, msg mailer.Message) mailer.SendResult {
	c.last = msg
	if c.fail {
		return mailer.SendResult{To: msg.To, Success: false, Error: "smtp: connection refused"}
	}
	return mailer.SendResult{To: msg.To, Success: true}
}

func newTestWorker(sender mailer.Sender) *worker {
	return &worker{templates: mailer.NewTemplates(sender, "https://autovilla.example")}
}

func mustJob(t *testing.T, kind string, payload interface{}) queue.EmailJob {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	return queue.EmailJob{Kind: kind, Payload: raw}
}

func TestProcessWelcomeEmail(t *testing.T) {
	sender := &captureSender{}
	w := newTestWorker(sender)

	job := mustJob(t, queue.JobWelcomeEmail, queue.WelcomeEmailPayload{
		Email: "new@example.com", Name: "Dealer Fan", UnsubscribeToken: "tok",
	})
	if err := w.process(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.last.To != "new@example.com" {
		t.Errorf("expected delivery to new@example.com, got %q", sender.last.To)
	}
	if !strings.Contains(sender.last.HTML, "Dealer Fan") {
		t.Errorf("subscriber name missing from welcome email")
	}
}

func TestProcessSellNotice(t *testing.T) {
	sender := &captureSender{}
	w := newTestWorker(sender)

	job := mustJob(t, queue.JobSellNotice, queue.SellNoticePayload{
		NotifyEmail: "staff@autovilla.example",
		Name:        "John Seller", Email: "john@example.com",
		Make: "Toyota", Model: "Hilux", Year: 2019,
	})
	if err := w.process(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.last.To != "staff@autovilla.example" {
		t.Errorf("notice must go to the staff inbox, got %q", sender.last.To)
	}
	if !strings.Contains(sender.last.Subject, "2019 Toyota Hilux") {
		t.Errorf("subject should name the vehicle, got %q", sender.last.Subject)
	}
}

func TestProcessUnknownKindIsDropped(t *testing.T) {
	w := newTestWorker(&captureSender{})
	job := queue.EmailJob{Kind: "mystery", Payload: json.RawMessage(`{}`)}

	if err := w.process(context.Background(), job); err != nil {
		t.Errorf("unknown kinds are dropped, not retried: %v", err)
	}
}

func TestProcessSendFailure(t *testing.T) {
	w := newTestWorker(&captureSender{fail: true})

	job := mustJob(t, queue.JobWelcomeEmail, queue.WelcomeEmailPayload{Email: "x@y.com"})
	if err := w.process(context.Background(), job); err == nil {
		t.Fatal("a failed delivery must surface an error so the job is retried")
	}
}

func TestRetryCount(t *testing.T) {
	cases := []struct {
		headers amqp.Table
		want    int
	}{
		{nil, 0},
		{amqp.Table{"x-retry-count": int32(2)}, 2},
		{amqp.Table{"x-retry-count": int64(3)}, 3},
		{amqp.Table{"x-retry-count": "bogus"}, 0},
	}
	for _, c := range cases {
		if got := retryCount(amqp.Delivery{Headers: c.headers}); got != c.want {
			t.Errorf("headers %v: got %d, want %d", c.headers, got, c.want)
		}
	}
}
