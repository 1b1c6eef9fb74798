package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/scheduling-api/internal/config"
	appointmentHandler "github.com/jwalitptl/scheduling-api/internal/handler/appointment"
	"github.com/jwalitptl/scheduling-api/internal/handler/health"
	medicalHandler "github.com/jwalitptl/scheduling-api/internal/handler/medical"
	notificationHandler "github.com/jwalitptl/scheduling-api/internal/handler/notification"
	profileHandler "github.com/jwalitptl/scheduling-api/internal/handler/profile"
	"github.com/jwalitptl/scheduling-api/internal/handler/prometheus"
	"github.com/jwalitptl/scheduling-api/internal/middleware"
	"github.com/jwalitptl/scheduling-api/internal/repository/postgres"
	"github.com/jwalitptl/scheduling-api/internal/router"
	appointmentService "github.com/jwalitptl/scheduling-api/internal/service/appointment"
	eventService "github.com/jwalitptl/scheduling-api/internal/service/event"
	medicalService "github.com/jwalitptl/scheduling-api/internal/service/medical"
	notificationService "github.com/jwalitptl/scheduling-api/internal/service/notification"
	profileService "github.com/jwalitptl/scheduling-api/internal/service/profile"
	"github.com/jwalitptl/scheduling-api/pkg/logger"
	"github.com/jwalitptl/scheduling-api/pkg/security"
	"github.com/jwalitptl/scheduling-api/pkg/validator"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Console,
	})
	validator.Setup()

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	specialistRepo := postgres.NewSpecialistRepository(base)
	specializationRepo := postgres.NewSpecializationRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	notificationRepo := postgres.NewNotificationRepository(base)
	historyRepo := postgres.NewMedicalHistoryRepository(base)
	contactRepo := postgres.NewEmergencyContactRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)

	// Initialize services
	eventSvc := eventService.NewEventService(outboxRepo)
	profileSvc := profileService.NewService(
		userRepo,
		patientRepo,
		specialistRepo,
		specializationRepo,
		security.NewBcryptHasher(cfg.Security.BcryptCost),
		eventSvc,
	)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, specialistRepo, eventSvc)
	notificationSvc := notificationService.NewService(notificationRepo, userRepo, eventSvc)
	medicalSvc := medicalService.NewService(historyRepo, contactRepo, userRepo, eventSvc)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.Security.AllowedOrigins

	// Setup router
	r := router.NewRouter(
		router.RouterConfig{
			Mode:             cfg.Server.Mode,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			RateLimitTTL:     cfg.RateLimit.TTL,
			CORSConfig:       corsConfig,
		},
		prometheus.New("scheduling_api"),
		health.NewHandler(db),
		profileHandler.NewHandler(profileSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		notificationHandler.NewHandler(notificationSvc),
		medicalHandler.NewHandler(medicalSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
