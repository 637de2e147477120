package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/config"
	"github.com/sangkips/registration-service/internal/logger"
	"github.com/sangkips/registration-service/internal/metrics"
	"github.com/sangkips/registration-service/internal/queue"
	"github.com/sangkips/registration-service/internal/worker"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport, err := queue.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.NotifyDriver).Msg("failed to open notification transport")
	}
	defer transport.Close()

	reg := prometheus.NewRegistry()
	w := worker.NewWorker(transport, worker.NewLogRecorder(), metrics.New(reg))

	metricsSrv := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Start(gctx)
	})
	g.Go(func() error {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("worker failed")
		return
	}

	log.Info().Msg("worker stopped")
}
