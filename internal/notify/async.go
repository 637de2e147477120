package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/metrics"
)

type event struct {
	ctx   context.Context
	topic string
	value any
}

// AsyncPublisher moves publishing off the request goroutine. A single
// consumer drains a bounded FIFO, so events for one topic keep the order
// in which Publish was called. Publish never blocks: when the buffer is
// full the event is dropped.
type AsyncPublisher struct {
	next    Notifier
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	events chan event
	done   chan struct{}
}

func NewAsyncPublisher(next Notifier, buffer int, m *metrics.Metrics) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 1
	}
	a := &AsyncPublisher{
		next:    next,
		metrics: m,
		events:  make(chan event, buffer),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncPublisher) Publish(ctx context.Context, topic string, value any) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		log.Warn().Str("topic", topic).Msg("publisher closed, dropping notification")
		a.metrics.IncDropped(topic)
		return
	}

	select {
	case a.events <- event{ctx: context.WithoutCancel(ctx), topic: topic, value: value}:
	default:
		log.Warn().Str("topic", topic).Msg("notification buffer full, dropping notification")
		a.metrics.IncDropped(topic)
	}
}

func (a *AsyncPublisher) run() {
	defer close(a.done)
	for ev := range a.events {
		a.next.Publish(ev.ctx, ev.topic, ev.value)
	}
}

// Close stops accepting events and waits for the queued ones to be sent,
// or for ctx to expire.
func (a *AsyncPublisher) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.events)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("pending notifications not flushed"), ctx.Err())
	}
}
