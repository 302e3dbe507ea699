package repository

import (
	"context"
	"time"

	"github.com/medbook/booking-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type DoctorRepository interface {
	List(ctx context.Context) ([]*model.Doctor, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	ListForUser(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error)
	// Cancel deletes the appointment only when it belongs to userID and
	// reports how many rows were removed. Zero is not an error.
	Cancel(ctx context.Context, appointmentID, userID int64) (int64, error)
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
