package appointment

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
)

// datetime-local inputs post without a zone or seconds.
const formTimeLayout = "2006-01-02T15:04"

type AppointmentService interface {
	Book(ctx context.Context, userID, doctorID int64, at time.Time) (*model.Appointment, error)
	ListForUser(ctx context.Context, userID int64) ([]*model.AppointmentDetail, error)
	Cancel(ctx context.Context, appointmentID, userID int64) (int64, error)
}

type Handler struct {
	svc AppointmentService
}

func NewHandler(svc AppointmentService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, requireSession gin.HandlerFunc) {
	r.POST("/book", requireSession, h.Book)
	r.GET("/api/appointments", requireSession, h.List)
	r.POST("/manage/cancel", requireSession, h.Cancel)
}

func (h *Handler) Book(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	doctorID, err := strconv.ParseInt(c.PostForm("doctor_id"), 10, 64)
	if err != nil {
		c.String(http.StatusOK, "Error booking appointment.")
		return
	}

	at, err := parseAppointmentTime(c.PostForm("appointment_time"))
	if err != nil {
		c.String(http.StatusOK, "Error booking appointment.")
		return
	}

	if _, err := h.svc.Book(c.Request.Context(), userID, doctorID, at); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("booking failed")
		c.String(http.StatusOK, "Error booking appointment.")
		return
	}

	c.Redirect(http.StatusFound, "/manage")
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	appointments, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("listing appointments failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	appointmentID, err := strconv.ParseInt(c.PostForm("appointment_id"), 10, 64)
	if err != nil {
		c.String(http.StatusOK, "Error cancelling appointment.")
		return
	}

	if _, err := h.svc.Cancel(c.Request.Context(), appointmentID, userID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("cancel failed")
		c.String(http.StatusOK, "Error cancelling appointment.")
		return
	}

	c.Redirect(http.StatusFound, "/manage")
}

func parseAppointmentTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(formTimeLayout, value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
