package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/config"
	"github.com/sangkips/registration-service/internal/db"
	"github.com/sangkips/registration-service/internal/domains/customers"
	"github.com/sangkips/registration-service/internal/domains/products"
	"github.com/sangkips/registration-service/internal/health"
	"github.com/sangkips/registration-service/internal/logger"
	"github.com/sangkips/registration-service/internal/metrics"
	"github.com/sangkips/registration-service/internal/notify"
	"github.com/sangkips/registration-service/internal/queue"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbOpts := db.Options{MaxOpenConns: cfg.DBMaxOpenConns, Retries: cfg.ConnectRetries}
	sqlDB, err := db.Connect(ctx, cfg.DBURL, dbOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer sqlDB.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	probes := map[string]health.Pinger{}

	var productRepo products.Repository
	switch cfg.ProductStore {
	case config.ProductStoreMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI, dbOpts)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer client.Disconnect(context.Background())

		productRepo = products.NewMongoRepository(client.Database(cfg.MongoDatabase))
		probes["mongodb"] = health.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		})
	default:
		productRepo = products.NewPostgresRepository(sqlDB)
	}
	log.Info().Str("store", cfg.ProductStore).Msg("product store selected")

	transport, err := queue.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.NotifyDriver).Msg("failed to open notification transport")
	}

	var notifier notify.Notifier = notify.Nop{}
	var async *notify.AsyncPublisher
	if transport != nil {
		defer transport.Close()
		probes["notifications"] = transport

		notifier = notify.NewPublisher(transport, m)
		if cfg.NotifyAsync {
			async = notify.NewAsyncPublisher(notifier, cfg.NotifyBuffer, m)
			notifier = async
		}
	} else {
		log.Warn().Msg("notifications disabled")
	}

	router := newRouter(routerDeps{
		logger:         log.Logger,
		customers:      customers.NewHandler(customers.NewService(customers.NewRepository(sqlDB), notifier, m)),
		products:       products.NewHandler(products.NewService(productRepo)),
		health:         health.NewHandler(sqlDB, probes),
		registry:       reg,
		allowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Msg("server starting on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}

	if async != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := async.Close(drainCtx); err != nil {
			log.Warn().Err(err).Msg("pending notifications were not delivered")
		}
		cancel()
	}

	log.Info().Msg("server stopped")
}
