package mailer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/autovilla/dealership-backend/internal/mailer"
)

// Capture sender recording the last rendered message
type CaptureSender struct {
	last mailer.Message
}

func (c *CaptureSender) Send(ctx context.Context, msg mailer.Message) mailer.SendResult {
	c.last = msg
	return mailer.SendResult{To: msg.To, Success: true}
}

func TestBroadcastEmailRendering(t *testing.T) {
	sender := &CaptureSender{}
	tmpl := mailer.NewTemplates(sender, "https://autovilla.example")

	res := tmpl.SendBroadcastEmail(
		context.Background(),
		"user@example.com", "User",
		"September arrivals", "<p>Fresh <b>stock</b></p>",
		"https://cdn.example.com/b/img.png", "Amina", "tok-123",
	)
	if !res.Success {
		t.Fatalf("send failed: %s", res.Error)
	}

	html := sender.last.HTML
	if !strings.Contains(html, "<p>Fresh <b>stock</b></p>") {
		t.Errorf("admin HTML content must pass through unescaped")
	}
	if !strings.Contains(html, "https://cdn.example.com/b/img.png") {
		t.Errorf("image URL missing from rendered email")
	}
	if !strings.Contains(html, "Amina") {
		t.Errorf("sender signature missing")
	}
	if !strings.Contains(html, "https://autovilla.example/newsletter/unsubscribe?token=tok-123") {
		t.Errorf("unsubscribe link missing or wrong: %s", html)
	}
	if sender.last.Subject != "September arrivals" {
		t.Errorf("subject not carried through, got %q", sender.last.Subject)
	}
}

func TestBroadcastEmailOmitsEmptyOptionals(t *testing.T) {
	sender := &CaptureSender{}
	tmpl := mailer.NewTemplates(sender, "https://autovilla.example")

	res := tmpl.SendBroadcastEmail(
		context.Background(),
		"user@example.com", "User",
		"Plain", "<p>No extras</p>", "", "", "tok",
	)
	if !res.Success {
		t.Fatalf("send failed: %s", res.Error)
	}
	if strings.Contains(sender.last.HTML, "<img") {
		t.Errorf("no image tag expected without an image URL")
	}
	if strings.Contains(sender.last.HTML, "— ") {
		t.Errorf("no signature line expected without a sender name")
	}
}

func TestWelcomeEmail(t *testing.T) {
	sender := &CaptureSender{}
	tmpl := mailer.NewTemplates(sender, "https://autovilla.example")

	res := tmpl.SendWelcomeEmail(context.Background(), "new@example.com", "Dealer Fan", "tok-9")
	if !res.Success {
		t.Fatalf("send failed: %s", res.Error)
	}
	if !strings.Contains(sender.last.HTML, "Dealer Fan") {
		t.Errorf("subscriber name missing from welcome email")
	}
	if !strings.Contains(sender.last.HTML, "unsubscribe?token=tok-9") {
		t.Errorf("unsubscribe link missing from welcome email")
	}
}
