package api

import (
	"strconv"
	"time"

	"github.com/avelikov/flightdesk/internal/logging"
	"github.com/avelikov/flightdesk/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID attaches an id to every request for log correlation, honoring a
// caller-supplied X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// Observe records per-request metrics and logs completion. The route pattern
// is used as the endpoint label to keep metric cardinality bounded.
func Observe(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		reg.HTTPRequestsTotal.WithLabelValues(endpoint, c.Request.Method, strconv.Itoa(status)).Inc()
		reg.HTTPRequestDuration.WithLabelValues(endpoint, c.Request.Method).Observe(duration)

		logging.Info("http request completed",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"endpoint", endpoint,
			"status_code", status,
			"duration_ms", int(duration*1000),
		)
	}
}
