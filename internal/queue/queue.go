// internal/queue/queue.go
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

const EmailQueue = "transactional_emails"

// Job kinds carried on the transactional email queue.
const (
	JobWelcomeEmail = "welcome_email"
	JobSellNotice   = "sell_request_notice"
)

// EmailJob is one queued transactional email. Broadcast campaign sends do
// not go through here; they fan out synchronously in the broadcast service.
type EmailJob struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type WelcomeEmailPayload struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	UnsubscribeToken string `json:"unsubscribe_token"`
}

type SellNoticePayload struct {
	NotifyEmail   string  `json:"notify_email"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	Mileage       int     `json:"mileage"`
	ExpectedPrice float64 `json:"expected_price"`
	Condition     string  `json:"condition"`
	Message       string  `json:"message"`
}

// Publisher enqueues email jobs. The connection is opened once at startup
// and shared; a lost connection surfaces as publish errors.
type Publisher interface {
	PublishEmailJob(kind string, payload any) error
	Close() error
}

type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if _, err := DeclareEmailQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

// DeclareEmailQueue declares the durable transactional email queue. Both
// the publisher and the worker declare it so either can start first.
func DeclareEmailQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		EmailQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declaring queue %s: %w", EmailQueue, err)
	}
	return q, nil
}

func (p *AMQPPublisher) PublishEmailJob(kind string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}
	body, err := json.Marshal(EmailJob{Kind: kind, Payload: raw})
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}

	return p.ch.Publish(
		"",
		EmailQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.ch.Close()
	return p.conn.Close()
}

var _ Publisher = (*AMQPPublisher)(nil)
