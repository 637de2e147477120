package queue

import (
	"context"
	"fmt"

	"github.com/sangkips/registration-service/internal/config"
)

// Transport is a connected notification channel that can both publish and
// subscribe.
type Transport interface {
	Send(ctx context.Context, topic string, body []byte) error
	Subscribe(ctx context.Context, topic, group string) (<-chan Message, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open connects the transport selected by cfg.NotifyDriver. It returns a
// nil Transport when notifications are disabled.
func Open(ctx context.Context, cfg *config.Config) (Transport, error) {
	switch cfg.NotifyDriver {
	case config.NotifyDriverRedis:
		r, err := NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.NotifyDriverRabbitMQ:
		r, err := NewRabbitMQ(cfg.RabbitMQURL, cfg.ConnectRetries)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.NotifyDriverNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown notification driver %q", cfg.NotifyDriver)
	}
}

var (
	_ Transport = (*Redis)(nil)
	_ Transport = (*RabbitMQ)(nil)
)
