package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CorrelationIDHeader carries the correlation id on requests and responses
	CorrelationIDHeader = "X-Correlation-ID"

	// CorrelationIDKey stores the correlation id in the request context
	CorrelationIDKey = "correlation_id"
)

// CorrelationID tags every request with an id for cross-log tracing. An id
// supplied by the caller is kept so upstream systems can follow their request
// through the platform; otherwise a fresh UUID is generated.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(CorrelationIDKey, id)
		c.Header(CorrelationIDHeader, id)

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation id, or an empty string
// when the middleware did not run.
func GetCorrelationID(c *gin.Context) string {
	v, _ := c.Get(CorrelationIDKey)
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}
