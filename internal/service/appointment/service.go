package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Book(ctx context.Context, userID, doctorID int64, at time.Time) (*model.Appointment, error) {
	appointment := &model.Appointment{
		UserID:          userID,
		DoctorID:        doctorID,
		AppointmentTime: at,
		Status:          model.AppointmentStatusScheduled,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Cancel deletes the appointment scoped to its owner. A zero-row delete
// (unknown id, or someone else's appointment) is still a success to the
// caller; it is logged so the two cases are visible server-side.
func (s *Service) Cancel(ctx context.Context, appointmentID, userID int64) (int64, error) {
	count, err := s.repo.Cancel(ctx, appointmentID, userID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		log.Warn().
			Int64("appointment_id", appointmentID).
			Int64("user_id", userID).
			Msg("cancel removed no rows")
	}
	return count, nil
}
