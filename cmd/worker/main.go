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
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/config"
	"github.com/medbook/booking-api/internal/repository/postgres"
	"github.com/medbook/booking-api/internal/worker"
	"github.com/medbook/booking-api/pkg/logger"
	"github.com/medbook/booking-api/pkg/metrics"
)

type workerConfig struct {
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        int           `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string        `envconfig:"DB_PASSWORD" default:""`
	DBName        string        `envconfig:"DB_NAME" default:"ehealth_db"`
	DBSSLMode     string        `envconfig:"DB_SSLMODE" default:"disable"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	HealthPort    int           `envconfig:"WORKER_HEALTH_PORT" default:"8081"`
}

func setupHealthCheck(port int, l *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			l.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	_ = godotenv.Load()

	l := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})
	log.Logger = l.ZL

	var cfg workerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		l.Fatal(err, "failed to load config")
	}

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		Name:         cfg.DBName,
		SSLMode:      cfg.DBSSLMode,
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		MaxLifetime:  30 * time.Minute,
	})
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	sweeper := worker.NewSweeper(appointmentRepo, cfg.SweepInterval, l, metrics.New("booking_worker"))

	setupHealthCheck(cfg.HealthPort, l)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("shutting down...")
		cancel()
	}()

	sweeper.Start(ctx)
}
