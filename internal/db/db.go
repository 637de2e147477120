package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// Schema is the DDL the queries are generated against. The service never
// applies it; tests and local setups do.
//
//go:embed schema.sql
var Schema string

type Options struct {
	MaxOpenConns int
	Retries      int
	RetryDelay   time.Duration
}

// Connect opens the shared pool and pings it, retrying up to opts.Retries times.
func Connect(ctx context.Context, dbURL string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database")
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	retries := max(opts.Retries, 1)
	delay := opts.RetryDelay
	if delay == 0 {
		delay = 2 * time.Second
	}

	for i := 0; i < retries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			log.Info().Msg("connected to database")
			return db, nil
		}
		if i < retries-1 {
			log.Warn().Err(err).Msgf("failed to ping database, retrying in %s (%d/%d)", delay, i+1, retries)
			select {
			case <-ctx.Done():
				db.Close()
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	db.Close()
	log.Error().Err(err).Msg("failed to ping database after retries")
	return nil, fmt.Errorf("failed to connect to database: %w", err)
}

// ErrorCode returns the SQLSTATE carried by a PostgreSQL error in err's
// chain, or "" when there is none.
func ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
