package worker

import (
	"context"
	"time"

	"github.com/medbook/booking-api/internal/repository"
	"github.com/medbook/booking-api/pkg/logger"
	"github.com/medbook/booking-api/pkg/metrics"
)

// Sweeper periodically marks scheduled appointments whose time has
// passed as completed, so the manage page reflects reality without a
// doctor-side calendar.
type Sweeper struct {
	repo     repository.AppointmentRepository
	interval time.Duration
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewSweeper(repo repository.AppointmentRepository, interval time.Duration, l *logger.Logger, m *metrics.Metrics) *Sweeper {
	return &Sweeper{repo: repo, interval: interval, logger: l, metrics: m}
}

// Start runs sweeps until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.ZL.Info().Dur("interval", s.interval).Msg("sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.ZL.Info().Msg("sweeper shutting down")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.ZL.Error().Err(err).Msg("sweep failed")
			}
		}
	}
}

// Sweep performs a single pass.
func (s *Sweeper) Sweep(ctx context.Context) error {
	count, err := s.repo.MarkCompletedBefore(ctx, time.Now())
	if err != nil {
		s.metrics.SweepFailures.Inc()
		return err
	}

	if count > 0 {
		s.metrics.SweptAppointments.Add(float64(count))
		s.logger.ZL.Info().Int64("count", count).Msg("appointments marked completed")
	}
	return nil
}
