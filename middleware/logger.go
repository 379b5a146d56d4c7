package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/josephkohhh/DataLoader/metrics"
)

// RequestLogger logs one structured line per request and feeds the
// Prometheus request metrics. Unmatched paths are recorded under their
// raw URL so 404 noise stays visible.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		status := c.Writer.Status()
		metrics.RecordRequest(c.Request.Method, endpoint, status, elapsed)

		log.Info("request",
			"method", c.Request.Method,
			"path", endpoint,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
			"request_id", c.GetString(RequestIDKey),
		)
	}
}
