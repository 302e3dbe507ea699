package doctor

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/model"
)

type DoctorService interface {
	List(ctx context.Context) ([]*model.Doctor, error)
}

type Handler struct {
	svc DoctorService
}

func NewHandler(svc DoctorService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/doctors", h.List)
}

func (h *Handler) List(c *gin.Context) {
	doctors, err := h.svc.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("listing doctors failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	c.JSON(http.StatusOK, doctors)
}
