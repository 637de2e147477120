// Package notify publishes domain events on a best-effort basis.
// Failures are logged and counted, never returned to the caller.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/metrics"
)

// Transport delivers an already serialized payload to a named channel.
type Transport interface {
	Send(ctx context.Context, topic string, body []byte) error
}

// Notifier is what services depend on.
type Notifier interface {
	Publish(ctx context.Context, topic string, value any)
}

// Publisher serializes values to JSON and hands them to a Transport synchronously.
type Publisher struct {
	transport Transport
	metrics   *metrics.Metrics
	timeout   time.Duration
}

func NewPublisher(transport Transport, m *metrics.Metrics) *Publisher {
	return &Publisher{
		transport: transport,
		metrics:   m,
		timeout:   3 * time.Second,
	}
}

// Publish never fails from the caller's point of view.
func (p *Publisher) Publish(ctx context.Context, topic string, value any) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("topic", topic).Msg("recovered panic while publishing notification")
			p.metrics.IncFailed(topic)
		}
	}()

	body, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to serialize notification")
		p.metrics.IncFailed(topic)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.transport.Send(ctx, topic, body); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to publish notification")
		p.metrics.IncFailed(topic)
		return
	}

	p.metrics.IncPublished(topic)
	log.Info().Str("topic", topic).RawJSON("payload", body).Msg("notification published")
}

// Nop discards every event. Used when NOTIFY_DRIVER=none.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) {}
