// Package server exposes the delivery backend over HTTP: the quote endpoint,
// the notification endpoints, and the health/metrics surface.
package server

import (
	"log/slog"

	"github.com/foodsspot/beeline/internal/mailer"
	"github.com/foodsspot/beeline/internal/messaging"
	"github.com/foodsspot/beeline/internal/metrics"
	"github.com/foodsspot/beeline/internal/quote"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the calculator and the external collaborators into HTTP handlers.
type Server struct {
	log       *slog.Logger       // Logger for request handling
	calc      *quote.Calculator  // Delivery quote calculator (the core)
	messenger messaging.Provider // Outbound messaging collaborator
	mailer    mailer.Sender      // Outbound email collaborator
	metrics   *metrics.Metrics   // Prometheus metrics
}

// New creates a Server from its dependencies.
func New(
	log *slog.Logger,
	calc *quote.Calculator,
	messenger messaging.Provider,
	sender mailer.Sender,
	appMetrics *metrics.Metrics,
) *Server {
	return &Server{
		log:       log,
		calc:      calc,
		messenger: messenger,
		mailer:    sender,
		metrics:   appMetrics,
	}
}

// Router builds the gin engine with logging and recovery middleware and all
// routes registered. The metrics registry is served from the same listener.
func (s *Server) Router(reg *prometheus.Registry) *gin.Engine {
	router := gin.New()
	router.Use(s.requestLogger(), s.recovery())

	router.GET("/", s.handleHome)
	router.POST("/calculate-delivery", s.handleCalculateDelivery)
	router.POST("/send-whatsapp", s.handleSendWhatsApp)
	router.POST("/send-order-confirmation", s.handleOrderConfirmation)

	router.GET("/healthz", s.handleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return router
}
