package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/b2b-transaction-platform/internal/api/service"
)

// AuthHandler handles HTTP requests for registration, login and password reset
type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.FullName, req.CompanyName)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, AuthResponse{
		Token: token,
		User:  mapUserToResponse(u),
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondOK(c, AuthResponse{
		Token: token,
		User:  mapUserToResponse(u),
	})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password. It responds 200
// regardless of whether the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{"message": "If the email is registered, a reset token has been sent"})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondOK(c, gin.H{"message": "Password updated"})
}
