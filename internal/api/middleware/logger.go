package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger emits one structured line per request after it completes. The entry
// carries the correlation id when present so it can be joined with the
// handler and repository logs for the same request.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestLogger := logger
		if id := GetCorrelationID(c); id != "" {
			requestLogger = logger.With("correlation_id", id)
		}

		c.Next()

		fullPath := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			fullPath += "?" + query
		}

		requestLogger.Info("HTTP request",
			"method", c.Request.Method,
			"path", fullPath,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}
