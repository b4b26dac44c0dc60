package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// genericFailureMessage is the only detail a caller sees for unexpected
// internal failures; the full error goes to the log.
const genericFailureMessage = "Sorry, an error occurred while calculating the delivery details. Please try again."

// requestLogger logs every handled request and records its duration.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RequestSeconds.WithLabelValues(route).Observe(duration)

		s.log.InfoContext(c.Request.Context(), "Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_seconds", duration,
		)
	}
}

// recovery converts a handler panic into a 500 response with a generic
// message, keeping the detail in the log only.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.log.ErrorContext(c.Request.Context(), "Panic recovered in handler",
					"path", c.Request.URL.Path, "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": genericFailureMessage,
				})
			}
		}()
		c.Next()
	}
}
