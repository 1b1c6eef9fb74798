package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/scheduling-api/internal/config"
	"github.com/jwalitptl/scheduling-api/internal/email"
	"github.com/jwalitptl/scheduling-api/internal/repository/postgres"
	internalworker "github.com/jwalitptl/scheduling-api/internal/worker"
	"github.com/jwalitptl/scheduling-api/pkg/logger"
	"github.com/jwalitptl/scheduling-api/pkg/messaging"
	"github.com/jwalitptl/scheduling-api/pkg/messaging/redis"
	"github.com/jwalitptl/scheduling-api/pkg/metrics"
	"github.com/jwalitptl/scheduling-api/pkg/worker"
)

// Settings are read from WORKER_* environment variables.
type Settings struct {
	BatchSize       int           `envconfig:"BATCH_SIZE" default:"100"`
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	RetryAttempts   int           `envconfig:"RETRY_ATTEMPTS" default:"3"`
	RetryDelay      time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
	Retention       time.Duration `envconfig:"RETENTION" default:"168h"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1h"`
	HealthPort      int           `envconfig:"HEALTH_PORT" default:"8081"`
	Mailer          bool          `envconfig:"MAILER" default:"true"`
}

func (s Settings) processorConfig() worker.OutboxProcessorConfig {
	return worker.OutboxProcessorConfig{
		BatchSize:     s.BatchSize,
		PollInterval:  s.PollInterval,
		RetryAttempts: s.RetryAttempts,
		RetryDelay:    s.RetryDelay,
	}
}

func setupHealthCheck(port int, db *sqlx.DB, reg *prometheus.Registry, lg *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error(err, "Health check server failed")
		}
	}()
	return srv
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	var settings Settings
	if err := envconfig.Process("worker", &settings); err != nil {
		log.Fatal().Err(err).Msg("Failed to load worker settings")
	}

	lg := logger.Setup(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Console,
	})
	hostname, _ := os.Hostname()
	lg = lg.WithFields(map[string]interface{}{"worker_id": fmt.Sprintf("%s-%d", hostname, os.Getpid())})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		lg.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New("scheduling_worker", reg)

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:              cfg.Redis.URL,
		MaxRetries:       cfg.Redis.MaxRetries,
		PoolSize:         cfg.Redis.PoolSize,
		FailureThreshold: cfg.Redis.FailureThreshold,
		BreakerTimeout:   cfg.Redis.BreakerTimeout,
	}, &lg.ZL, m)
	if err != nil {
		lg.Fatal(err, "Failed to create Redis broker")
	}
	bus := messaging.NewBrokerAdapter(broker)
	defer bus.Close()

	base := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(base)
	userRepo := postgres.NewUserRepository(base)

	processor, err := worker.NewOutboxProcessor(outboxRepo, bus, settings.processorConfig(), lg, m)
	if err != nil {
		lg.Fatal(err, "Failed to create outbox processor")
	}
	cleanup := internalworker.NewOutboxCleanupWorker(outboxRepo, settings.Retention, settings.CleanupInterval, lg)

	healthSrv := setupHealthCheck(settings.HealthPort, db, reg, lg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if settings.Mailer {
		mailer := internalworker.NewNotificationMailer(bus, userRepo, email.NewSMTPService(cfg.SMTP), lg)
		if err := mailer.Start(ctx); err != nil {
			lg.Fatal(err, "Failed to start notification mailer")
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		cleanup.Start(ctx)
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	lg.Info("Shutting down...")

	cancel()
	wg.Wait()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		lg.Error(err, "Health check server shutdown failed")
	}
}
