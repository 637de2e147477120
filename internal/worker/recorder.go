package worker

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/domains/customers"
)

// Recorder stores one audited customer event.
type Recorder interface {
	Record(ctx context.Context, c customers.Customer) error
}

// LogRecorder writes audited events to the structured log.
type LogRecorder struct{}

func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

func (LogRecorder) Record(ctx context.Context, c customers.Customer) error {
	log.Info().
		Int64("customer_id", c.ID).
		Str("nome", c.Name).
		Str("email", c.Email).
		Msg("customer registered")
	return nil
}
