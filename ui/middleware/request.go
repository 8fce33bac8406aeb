package middleware

import (
	"time"

	"hrdash/internal"
	"hrdash/internal/api"
	"hrdash/internal/usage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or assigns a new UUID, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(api.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one line per request at Info, or Warn for 5xx
func AccessLog(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := logger.With(
			"request_id", c.GetString(api.RequestIDKey),
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
		if status >= 500 {
			line.Warn("[HTTP] %s %s", c.Request.Method, c.Request.URL.RequestURI())
			return
		}
		line.Info("[HTTP] %s %s", c.Request.Method, c.Request.URL.RequestURI())
	}
}

// Metrics records request counts and latency by matched route
func Metrics(metrics *usage.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
