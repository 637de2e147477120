package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis publishes notifications with PUBLISH. Subscribers only see
// messages sent while they are connected.
type Redis struct {
	client *redis.Client
}

// NewRedis parses url and pings the server.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		// The publisher tolerates an unavailable channel; keep the client
		// so it reconnects on its own once Redis is back.
		log.Warn().Err(err).Str("addr", opts.Addr).Msg("redis ping failed, notifications may be lost")
	} else {
		log.Info().Str("addr", opts.Addr).Msg("connected to Redis")
	}

	return &Redis{client: client}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Send(ctx context.Context, topic string, body []byte) error {
	receivers, err := r.client.Publish(ctx, topic, body).Result()
	if err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	log.Debug().Str("topic", topic).Int64("receivers", receivers).Msg("published message to channel")
	return nil
}

// Subscribe listens on topic. group is ignored: pub/sub fans out to every subscriber.
func (r *Redis) Subscribe(ctx context.Context, topic, _ string) (<-chan Message, error) {
	sub := r.client.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- NewMessage(msg.Channel, []byte(msg.Payload), nil, nil):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis client")
		return err
	}
	log.Info().Msg("closed Redis connection")
	return nil
}
