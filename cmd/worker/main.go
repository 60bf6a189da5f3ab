// cmd/worker/main.go
//
// Consumes the transactional email queue and delivers welcome emails and
// sell-request staff notices over SMTP. Broadcast sends do not pass through
// here.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"github.com/autovilla/dealership-backend/internal/config"
	"github.com/autovilla/dealership-backend/internal/mailer"
	"github.com/autovilla/dealership-backend/internal/queue"
)

const maxRetries = 3

type worker struct {
	ch        *amqp.Channel
	templates *mailer.Templates
	log       zerolog.Logger

	processed atomic.Int64
	failed    atomic.Int64
}

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "worker").Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to RabbitMQ")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("opening channel")
	}
	defer ch.Close()

	q, err := queue.DeclareEmailQueue(ch)
	if err != nil {
		log.Fatal().Err(err).Msg("declaring queue")
	}

	if err := ch.Qos(10, 0, false); err != nil {
		log.Fatal().Err(err).Msg("setting prefetch")
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("registering consumer")
	}

	zoho := mailer.NewZohoMailer(cfg.SMTP, cfg.MailSendTimeout, log)
	w := &worker{
		ch:        ch,
		templates: mailer.NewTemplates(zoho, cfg.FrontendURL),
		log:       log,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range msgs {
			w.handle(d)
		}
	}()

	// Periodic throughput summary.
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			log.Info().
				Int64("processed", w.processed.Load()).
				Int64("failed", w.failed.Load()).
				Msg("worker stats")
		}
	}()

	log.Info().Str("queue", q.Name).Msg("worker running, waiting for messages")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ch.Close()
	conn.Close()
	<-done
}

func (w *worker) handle(d amqp.Delivery) {
	var job queue.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		w.log.Error().Err(err).Msg("invalid job body, dropping")
		d.Ack(false)
		return
	}

	ctx := context.Background()
	if err := w.process(ctx, job); err != nil {
		retries := retryCount(d)
		if retries < maxRetries {
			w.log.Warn().Err(err).Str("kind", job.Kind).Int("retry", retries+1).Msg("email failed, requeueing")
			w.requeue(d, retries+1)
		} else {
			w.failed.Add(1)
			w.log.Error().Err(err).Str("kind", job.Kind).Msg("email failed, retries exhausted")
		}
		d.Ack(false)
		return
	}

	w.processed.Add(1)
	d.Ack(false)
}

func (w *worker) process(ctx context.Context, job queue.EmailJob) error {
	switch job.Kind {
	case queue.JobWelcomeEmail:
		var p queue.WelcomeEmailPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("decoding welcome payload: %w", err)
		}
		res := w.templates.SendWelcomeEmail(ctx, p.Email, p.Name, p.UnsubscribeToken)
		if !res.Success {
			return fmt.Errorf("sending welcome email to %s: %s", p.Email, res.Error)
		}
		return nil

	case queue.JobSellNotice:
		var p queue.SellNoticePayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("decoding sell notice payload: %w", err)
		}
		res := w.templates.SendSellRequestNotice(ctx, p.NotifyEmail, mailer.SellNoticeData{
			Name:          p.Name,
			Email:         p.Email,
			Phone:         p.Phone,
			Make:          p.Make,
			Model:         p.Model,
			Year:          p.Year,
			Mileage:       p.Mileage,
			ExpectedPrice: p.ExpectedPrice,
			Condition:     p.Condition,
			Message:       p.Message,
		})
		if !res.Success {
			return fmt.Errorf("sending sell notice to %s: %s", p.NotifyEmail, res.Error)
		}
		return nil

	default:
		w.log.Warn().Str("kind", job.Kind).Msg("unknown job kind, dropping")
		return nil
	}
}

// requeue republishes with an incremented retry header. A plain Nack-requeue
// would loop forever because headers cannot be changed in place.
func (w *worker) requeue(d amqp.Delivery, retries int) {
	err := w.ch.Publish(
		"",
		queue.EmailQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{"x-retry-count": int32(retries)},
			Body:         d.Body,
		},
	)
	if err != nil {
		w.failed.Add(1)
		w.log.Error().Err(err).Msg("requeue failed, dropping job")
	}
}

func retryCount(d amqp.Delivery) int {
	switch v := d.Headers["x-retry-count"].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return 0
	}
}
