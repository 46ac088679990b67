package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b2b-transaction-platform/internal/auth"
	"github.com/b2b-transaction-platform/internal/config"
)

func newAuthTestRouter(tokens *auth.TokenManager) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var captured uuid.UUID
	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/protected", RequireAuth(logger, tokens), func(c *gin.Context) {
		id, ok := GetPrincipalID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		captured = id
		c.Status(http.StatusOK)
	})

	return router, &captured
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager(config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour})

	t.Run("ValidTokenSetsPrincipal", func(t *testing.T) {
		router, captured := newAuthTestRouter(tokens)
		userID := uuid.New()
		token, err := tokens.Issue(userID)
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, userID, *captured)
	})

	t.Run("MissingHeaderRejected", func(t *testing.T) {
		router, _ := newAuthTestRouter(tokens)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
	})

	t.Run("MalformedHeaderRejected", func(t *testing.T) {
		router, _ := newAuthTestRouter(tokens)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("ForgedTokenRejected", func(t *testing.T) {
		router, _ := newAuthTestRouter(tokens)
		forged := auth.NewTokenManager(config.JWTConfig{Secret: "other-secret", TokenTTL: time.Hour})
		token, err := forged.Issue(uuid.New())
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetPrincipalID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetPrincipalID(c)
	assert.False(t, ok)
}
