package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/domains/customers"
	"github.com/sangkips/registration-service/internal/metrics"
	"github.com/sangkips/registration-service/internal/queue"
)

const (
	// AuditGroup names the subscription the audit worker consumes from.
	AuditGroup = "audit"

	maxAttempts = 3
)

// Source is a transport that can deliver published events.
type Source interface {
	Subscribe(ctx context.Context, topic, group string) (<-chan queue.Message, error)
}

type Worker struct {
	source     Source
	recorder   Recorder
	metrics    *metrics.Metrics
	retryDelay time.Duration
}

func NewWorker(source Source, recorder Recorder, m *metrics.Metrics) *Worker {
	return &Worker{
		source:     source,
		recorder:   recorder,
		metrics:    m,
		retryDelay: time.Second,
	}
}

// Start consumes customer-created events until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.source.Subscribe(ctx, customers.Topic, AuditGroup)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	log.Info().Str("topic", customers.Topic).Msg("worker started, waiting for messages")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("subscription to %s closed", customers.Topic)
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *Worker) processMessage(ctx context.Context, msg queue.Message) {
	var c customers.Customer
	if err := json.Unmarshal(msg.Body, &c); err != nil || c.ID <= 0 {
		log.Error().Err(err).Str("topic", msg.Topic).Bytes("body", msg.Body).Msg("failed to decode customer event")
		w.reject(msg)
		return
	}

	for attempt := 1; ; attempt++ {
		err := w.recorder.Record(ctx, c)
		if err == nil {
			break
		}
		if attempt >= maxAttempts || ctx.Err() != nil {
			log.Warn().Err(err).Int64("customer_id", c.ID).Int("attempts", attempt).Msg("max retries reached, giving up")
			w.reject(msg)
			return
		}

		log.Info().Err(err).Int64("customer_id", c.ID).Int("attempt", attempt).Msg("retrying audit record")
		select {
		case <-time.After(w.retryDelay):
		case <-ctx.Done():
		}
	}

	w.metrics.IncAuditConsumed(msg.Topic)
	if err := msg.Ack(); err != nil {
		log.Error().Err(err).Int64("customer_id", c.ID).Msg("failed to ack message")
	}
}

func (w *Worker) reject(msg queue.Message) {
	w.metrics.IncAuditRejected(msg.Topic)
	if err := msg.Reject(); err != nil {
		log.Error().Err(err).Str("topic", msg.Topic).Msg("failed to reject message")
	}
}
