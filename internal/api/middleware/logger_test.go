package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("LogsRequestDetails", func(t *testing.T) {
		var logBuffer bytes.Buffer
		testLogger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Logger(testLogger))
		router.GET("/items", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		correlationID := uuid.New().String()
		req, _ := http.NewRequest(http.MethodGet, "/items?status=PENDING", nil)
		req.Header.Set(CorrelationIDHeader, correlationID)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, `"msg":"HTTP request"`)
		assert.Contains(t, logOutput, `"method":"GET"`)
		assert.Contains(t, logOutput, `"path":"/items?status=PENDING"`)
		assert.Contains(t, logOutput, `"status":200`)
		assert.Contains(t, logOutput, `"correlation_id":"`+correlationID+`"`)
	})

	t.Run("LogsErrorStatus", func(t *testing.T) {
		var logBuffer bytes.Buffer
		testLogger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

		router := gin.New()
		router.Use(Logger(testLogger))
		router.GET("/missing", func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		})

		req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Contains(t, logBuffer.String(), `"status":404`)
	})
}
