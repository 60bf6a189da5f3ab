// internal/mailer/mailer.go
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/autovilla/dealership-backend/internal/config"
)

// Message is a fully prepared outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// SendResult is the per-recipient outcome of a send attempt. Transport
// failures are reported here, never as a Go error: one bad recipient must
// not look like an adapter fault to the caller.
type SendResult struct {
	To        string `json:"to"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Sender delivers a single email. Implementations are safe for concurrent
// use; the broadcast orchestrator calls Send from many goroutines at once.
type Sender interface {
	Send(ctx context.Context, msg Message) SendResult
}

// ZohoMailer sends over Zoho SMTP with implicit TLS.
type ZohoMailer struct {
	cfg     config.SMTPConfig
	timeout time.Duration
	log     zerolog.Logger
}

func NewZohoMailer(cfg config.SMTPConfig, timeout time.Duration, log zerolog.Logger) *ZohoMailer {
	return &ZohoMailer{cfg: cfg, timeout: timeout, log: log.With().Str("component", "mailer").Logger()}
}

// Send performs one SMTP round trip. The connection deadline covers the
// whole exchange so a hung recipient cannot stall a broadcast batch.
func (m *ZohoMailer) Send(ctx context.Context, msg Message) SendResult {
	if msg.To == "" {
		return SendResult{To: msg.To, Success: false, Error: "empty recipient address"}
	}

	messageID := uuid.NewString()
	if err := m.deliver(ctx, msg, messageID); err != nil {
		m.log.Warn().Str("to", msg.To).Err(err).Msg("send failed")
		return SendResult{To: msg.To, Success: false, Error: err.Error()}
	}

	return SendResult{To: msg.To, Success: true, MessageID: messageID}
}

func (m *ZohoMailer) deliver(ctx context.Context, msg Message, messageID string) error {
	deadline := time.Now().Add(m.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Deadline: deadline},
		Config:    &tls.Config{ServerName: m.cfg.Host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", m.cfg.Addr())
	if err != nil {
		return fmt.Errorf("dialing %s: %w", m.cfg.Addr(), err)
	}
	conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(m.buildMIME(msg, messageID)); err != nil {
		w.Close()
		return fmt.Errorf("writing body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing body: %w", err)
	}

	return client.Quit()
}

func (m *ZohoMailer) buildMIME(msg Message, messageID string) []byte {
	from := fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.cfg.FromName), m.cfg.From)
	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", msg.ToName), msg.To)
	}

	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMessage-ID: <%s@%s>\r\nDate: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"utf-8\"\r\n\r\n",
		from,
		to,
		mime.QEncoding.Encode("utf-8", msg.Subject),
		messageID,
		m.cfg.Host,
		time.Now().Format(time.RFC1123Z),
	)

	body := msg.HTML
	if body == "" {
		body = msg.Text
	}
	return []byte(headers + body)
}

var _ Sender = (*ZohoMailer)(nil)
