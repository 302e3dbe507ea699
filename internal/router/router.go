package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medbook/booking-api/internal/handler"
	appointmentHandler "github.com/medbook/booking-api/internal/handler/appointment"
	authHandler "github.com/medbook/booking-api/internal/handler/auth"
	doctorHandler "github.com/medbook/booking-api/internal/handler/doctor"
	pagesHandler "github.com/medbook/booking-api/internal/handler/pages"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/pkg/metrics"
)

type Router struct {
	engine *gin.Engine
}

func NewRouter(
	authMW *middleware.AuthMiddleware,
	pages *pagesHandler.Handler,
	auth *authHandler.Handler,
	appointments *appointmentHandler.Handler,
	doctors *doctorHandler.Handler,
	base *handler.Handler,
	m *metrics.Metrics,
) *Router {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(m),
	)

	requireSession := authMW.RequireSession()

	pages.RegisterRoutes(engine, requireSession)
	auth.RegisterRoutes(engine)
	appointments.RegisterRoutes(engine, requireSession)
	doctors.RegisterRoutes(engine)

	engine.GET("/health", base.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
