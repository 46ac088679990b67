package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/b2b-transaction-platform/internal/auth"
)

// PrincipalIDKey is the key used to store the authenticated user id in the context
const PrincipalIDKey = "principal_id"

// RequireAuth verifies the bearer token and stores the principal's user id in
// the gin context. Requests without a valid token are rejected with 401.
func RequireAuth(logger *slog.Logger, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(c, "Missing bearer token")
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Info("Rejected bearer token", "error", err)
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(PrincipalIDKey, userID)
		c.Next()
	}
}

// GetPrincipalID retrieves the authenticated user id from the gin context.
// The second return is false when the request did not pass RequireAuth.
func GetPrincipalID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(PrincipalIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

func unauthorized(c *gin.Context, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, response)
}
