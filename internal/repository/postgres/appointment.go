package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/medbook/booking-api/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (user_id, doctor_id, appointment_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if appointment.Status == "" {
		appointment.Status = model.AppointmentStatusScheduled
	}
	appointment.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		appointment.UserID,
		appointment.DoctorID,
		appointment.AppointmentTime,
		appointment.Status,
		appointment.CreatedAt,
	).Scan(&appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) ListForUser(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.id, d.name AS doctor_name, d.specialty, a.appointment_time, a.status
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.user_id = $1
		ORDER BY a.appointment_time DESC
	`
	appointments := make([]*model.AppointmentDetail, 0)
	if err := r.db.SelectContext(ctx, &appointments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, appointmentID, userID int64) (int64, error) {
	query := `
		DELETE FROM appointments
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, appointmentID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *appointmentRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE appointments
		SET status = $1
		WHERE status = $2 AND appointment_time < $3
	`
	result, err := r.db.ExecContext(ctx, query,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusScheduled,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark appointments completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
