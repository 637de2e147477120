package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo creates the shared client and pings the primary, retrying
// up to opts.Retries times. The driver pools connections internally.
func ConnectMongo(ctx context.Context, uri string, opts Options) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(uri)
	if opts.MaxOpenConns > 0 {
		clientOpts.SetMaxPoolSize(uint64(opts.MaxOpenConns))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Error().Err(err).Msg("failed to create mongodb client")
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	retries := max(opts.Retries, 1)
	delay := opts.RetryDelay
	if delay == 0 {
		delay = 2 * time.Second
	}

	for i := 0; i < retries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx, readpref.Primary())
		cancel()
		if err == nil {
			log.Info().Msg("connected to mongodb")
			return client, nil
		}
		if i < retries-1 {
			log.Warn().Err(err).Msgf("failed to ping mongodb, retrying in %s (%d/%d)", delay, i+1, retries)
			select {
			case <-ctx.Done():
				client.Disconnect(context.Background())
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	client.Disconnect(context.Background())
	log.Error().Err(err).Msg("failed to ping mongodb after retries")
	return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
}
