package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	UserID          int64             `db:"user_id" json:"user_id"`
	DoctorID        int64             `db:"doctor_id" json:"doctor_id"`
	AppointmentTime time.Time         `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
}

// AppointmentDetail is an appointment joined with its doctor, the shape
// returned by GET /api/appointments.
type AppointmentDetail struct {
	ID              int64             `db:"id" json:"id"`
	DoctorName      string            `db:"doctor_name" json:"doctor_name"`
	Specialty       string            `db:"specialty" json:"specialty"`
	AppointmentTime time.Time         `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
}
