// Package auth provides JWT issuance/verification and password hashing for
// the platform's identity layer.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/b2b-transaction-platform/internal/config"
)

// ErrInvalidToken is returned for tokens that are malformed, expired, or
// signed with the wrong key.
type ErrInvalidToken struct {
	Reason string
}

func (e ErrInvalidToken) Error() string {
	return fmt.Sprintf("invalid token: %s", e.Reason)
}

// TokenManager issues and verifies HS256 access tokens whose subject is the
// user id.
type TokenManager struct {
	secret   []byte
	tokenTTL time.Duration
	clockNow func() time.Time
}

// NewTokenManager creates a token manager from JWT configuration.
func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
		clockNow: time.Now,
	}
}

// Issue creates a signed access token for the given user.
func (m *TokenManager) Issue(userID uuid.UUID) (string, error) {
	now := m.clockNow()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify validates a token string and returns the user id it was issued for.
func (m *TokenManager) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clockNow))
	if err != nil {
		return uuid.Nil, ErrInvalidToken{Reason: err.Error()}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken{Reason: "unexpected claims"}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken{Reason: "subject is not a user id"}
	}

	return userID, nil
}
