package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/session"
	"github.com/medbook/booking-api/pkg/apperrors"
	"github.com/medbook/booking-api/pkg/metrics"
)

// UserService is the slice of the user service this handler needs.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type Handler struct {
	users   UserService
	store   session.Store
	codec   *session.Codec
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewHandler(users UserService, store session.Store, codec *session.Codec, ttl time.Duration, m *metrics.Metrics) *Handler {
	return &Handler{users: users, store: store, codec: codec, ttl: ttl, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}

// Register creates the user and sends them to the login page. Any
// failure, duplicate email included, collapses into one plain-text
// message like the pages expect.
func (h *Handler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if _, err := h.users.Register(c.Request.Context(), name, email, password); err != nil {
		log.Error().Err(err).Str("email", email).Msg("registration failed")
		c.String(http.StatusOK, "Error registering user. Maybe email already exists.")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.String(http.StatusOK, "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("login failed")
		c.String(http.StatusOK, "Server error")
		return
	}

	sessionID, err := h.store.Create(c.Request.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create session")
		c.String(http.StatusOK, "Server error")
		return
	}
	h.metrics.SessionsCreated.Inc()

	c.SetCookie(middleware.CookieName, h.codec.Encode(sessionID), int(h.ttl.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/book")
}

// Logout destroys the session whatever state the cookie is in and sends
// the client home.
func (h *Handler) Logout(c *gin.Context) {
	if value, err := c.Cookie(middleware.CookieName); err == nil {
		if sessionID, err := h.codec.Decode(value); err == nil {
			if err := h.store.Destroy(c.Request.Context(), sessionID); err != nil {
				log.Error().Err(err).Msg("failed to destroy session")
			} else {
				h.metrics.SessionsDestroyed.Inc()
			}
		}
	}

	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
