package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/config"
	"github.com/medbook/booking-api/internal/handler"
	appointmentHandler "github.com/medbook/booking-api/internal/handler/appointment"
	authHandler "github.com/medbook/booking-api/internal/handler/auth"
	doctorHandler "github.com/medbook/booking-api/internal/handler/doctor"
	pagesHandler "github.com/medbook/booking-api/internal/handler/pages"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/repository/postgres"
	"github.com/medbook/booking-api/internal/router"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	doctorService "github.com/medbook/booking-api/internal/service/doctor"
	userService "github.com/medbook/booking-api/internal/service/user"
	"github.com/medbook/booking-api/internal/session"
	"github.com/medbook/booking-api/pkg/logger"
	"github.com/medbook/booking-api/pkg/metrics"
	"github.com/medbook/booking-api/pkg/security"
)

func main() {
	_ = godotenv.Load()

	log.Logger = logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	}).ZL

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Sessions live in Redis when a URL is configured, else in-process.
	var sessionStore session.Store
	if cfg.Redis.URL != "" {
		redisStore, err := session.NewRedisStore(cfg.Redis.URL, cfg.Session.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisStore.Close()
		sessionStore = redisStore
		log.Info().Msg("using Redis session store")
	} else {
		sessionStore = session.NewMemoryStore(cfg.Session.TTL)
		log.Info().Msg("using in-memory session store")
	}
	codec := session.NewCodec(cfg.Session.Secret)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	hasher := security.NewBcryptHasher(security.DefaultCost)
	userSvc := userService.NewService(userRepo, hasher)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	doctorSvc := doctorService.NewService(doctorRepo)

	m := metrics.New("booking_api")

	// Middleware and handlers
	authMW := middleware.NewAuthMiddleware(sessionStore, codec)
	h := handler.NewHandler()
	pagesH := pagesHandler.NewHandler(cfg.Server.ViewsDir)
	authH := authHandler.NewHandler(userSvc, sessionStore, codec, cfg.Session.TTL, m)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)

	r := router.NewRouter(authMW, pagesH, authH, appointmentH, doctorH, h, m)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
