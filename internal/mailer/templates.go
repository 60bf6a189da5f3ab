// internal/mailer/templates.go
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// Templates renders the platform's HTML emails and delegates delivery to a
// Sender. Every helper returns the Sender's result untouched.
type Templates struct {
	sender      Sender
	frontendURL string
}

func NewTemplates(sender Sender, frontendURL string) *Templates {
	return &Templates{sender: sender, frontendURL: frontendURL}
}

// UnsubscribeURL builds the public opt-out link embedded in every
// newsletter email.
func (t *Templates) UnsubscribeURL(token string) string {
	return fmt.Sprintf("%s/newsletter/unsubscribe?token=%s", t.frontendURL, token)
}

var broadcastTmpl = template.Must(template.New("broadcast").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,sans-serif;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;">
    <div style="background:#1a1a2e;padding:24px;text-align:center;">
      <h1 style="color:#e0b43a;margin:0;font-size:22px;">AutoVilla Motors</h1>
    </div>
    {{if .ImageURL}}<img src="{{.ImageURL}}" alt="" style="width:100%;display:block;">{{end}}
    <div style="padding:24px;color:#333;">
      {{.Content}}
      {{if .SenderName}}<p style="margin-top:24px;">— {{.SenderName}}</p>{{end}}
    </div>
    <div style="padding:16px 24px;background:#f0f0f0;font-size:12px;color:#888;text-align:center;">
      <p>You are receiving this because you subscribed to our newsletter.</p>
      <p><a href="{{.UnsubscribeURL}}" style="color:#888;">Unsubscribe</a></p>
    </div>
  </div>
</body>
</html>`))

type broadcastData struct {
	Content        template.HTML
	ImageURL       string
	SenderName     string
	UnsubscribeURL string
}

// SendBroadcastEmail renders one campaign email for a subscriber.
// Content is admin-authored HTML and is injected as-is.
func (t *Templates) SendBroadcastEmail(ctx context.Context, to, toName, subject, content, imageURL, senderName, unsubscribeToken string) SendResult {
	var buf bytes.Buffer
	err := broadcastTmpl.Execute(&buf, broadcastData{
		Content:        template.HTML(content),
		ImageURL:       imageURL,
		SenderName:     senderName,
		UnsubscribeURL: t.UnsubscribeURL(unsubscribeToken),
	})
	if err != nil {
		return SendResult{To: to, Success: false, Error: fmt.Sprintf("rendering template: %v", err)}
	}

	return t.sender.Send(ctx, Message{
		To:      to,
		ToName:  toName,
		Subject: subject,
		HTML:    buf.String(),
	})
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,sans-serif;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;padding:24px;color:#333;">
    <h2 style="color:#1a1a2e;">Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Thanks for subscribing to the AutoVilla Motors newsletter. You'll be the
    first to hear about new arrivals, price drops and dealership news.</p>
    <p><a href="{{.FrontendURL}}/cars" style="color:#e0b43a;">Browse our latest listings</a></p>
    <p style="font-size:12px;color:#888;">Changed your mind?
    <a href="{{.UnsubscribeURL}}" style="color:#888;">Unsubscribe</a></p>
  </div>
</body>
</html>`))

func (t *Templates) SendWelcomeEmail(ctx context.Context, to, name, unsubscribeToken string) SendResult {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, map[string]string{
		"Name":           name,
		"FrontendURL":    t.frontendURL,
		"UnsubscribeURL": t.UnsubscribeURL(unsubscribeToken),
	})
	if err != nil {
		return SendResult{To: to, Success: false, Error: fmt.Sprintf("rendering template: %v", err)}
	}

	return t.sender.Send(ctx, Message{
		To:      to,
		ToName:  name,
		Subject: "Welcome to the AutoVilla newsletter",
		HTML:    buf.String(),
	})
}

var sellNoticeTmpl = template.Must(template.New("sellnotice").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#333;">
  <h2>New sell request</h2>
  <p>{{.Name}} ({{.Email}}, {{.Phone}}) wants to sell:</p>
  <table cellpadding="4">
    <tr><td><b>Vehicle</b></td><td>{{.Year}} {{.Make}} {{.Model}}</td></tr>
    <tr><td><b>Mileage</b></td><td>{{.Mileage}} km</td></tr>
    <tr><td><b>Asking</b></td><td>{{.ExpectedPrice}}</td></tr>
    <tr><td><b>Condition</b></td><td>{{.Condition}}</td></tr>
  </table>
  {{if .Message}}<p><b>Message:</b> {{.Message}}</p>{{end}}
  <p><a href="{{.FrontendURL}}/admin/sell-requests">Open in dashboard</a></p>
</body>
</html>`))

// SellNoticeData is what the worker feeds into the staff notification.
type SellNoticeData struct {
	Name          string
	Email         string
	Phone         string
	Make          string
	Model         string
	Year          int
	Mileage       int
	ExpectedPrice float64
	Condition     string
	Message       string
	FrontendURL   string
}

func (t *Templates) SendSellRequestNotice(ctx context.Context, to string, data SellNoticeData) SendResult {
	data.FrontendURL = t.frontendURL
	var buf bytes.Buffer
	if err := sellNoticeTmpl.Execute(&buf, data); err != nil {
		return SendResult{To: to, Success: false, Error: fmt.Sprintf("rendering template: %v", err)}
	}

	return t.sender.Send(ctx, Message{
		To:      to,
		Subject: fmt.Sprintf("Sell request: %d %s %s", data.Year, data.Make, data.Model),
		HTML:    buf.String(),
	})
}
