package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/b2b-transaction-platform/internal/auth"
	"github.com/b2b-transaction-platform/internal/domain/user"
	"github.com/b2b-transaction-platform/internal/mail"
)

// ErrInvalidCredentials is returned for any login failure so callers cannot
// distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidResetToken is returned for unknown or expired reset tokens
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	userRepo      user.Repository
	tokens        *auth.TokenManager
	sender        mail.Sender
	resetTokenTTL time.Duration
	logger        *slog.Logger
	clockNow      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(logger *slog.Logger, userRepo user.Repository, tokens *auth.TokenManager, sender mail.Sender, resetTokenTTL time.Duration) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		sender:        sender,
		resetTokenTTL: resetTokenTTL,
		logger:        logger,
		clockNow:      time.Now,
	}
}

// Register creates a new user and returns it with a signed access token
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, fullName, companyName string) (*user.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := user.NewUser(email, hash, fullName, companyName)
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", "user_id", u.ID.String(), "email", u.Email)

	return u, token, nil
}

// Login verifies credentials and returns the user with a signed access token.
// The email is normalized first so it matches the stored form regardless of
// the casing the caller typed.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		var notFound user.ErrEmailNotFound
		if errors.As(err, &notFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		s.logger.Info("Rejected login attempt", "email", u.Email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// ForgotPassword issues a reset token and mails it. Unknown emails are
// swallowed so the endpoint cannot be used to enumerate accounts.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		var notFound user.ErrEmailNotFound
		if errors.As(err, &notFound) {
			s.logger.Info("Password reset requested for unknown email", "email", email)
			return nil
		}
		return err
	}

	token := uuid.New().String()
	expiry := s.clockNow().Add(s.resetTokenTTL)
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiry

	if err := s.userRepo.Update(ctx, u); err != nil {
		return err
	}

	body := "Use this token to reset your password: " + token
	if err := s.sender.Send(ctx, u.Email, "Password reset", body); err != nil {
		s.logger.Error("Failed to send reset mail", "email", u.Email, "error", err)
		return err
	}

	return nil
}

// ResetPassword exchanges a valid reset token for a new password
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		var notFound user.ErrUserNotFound
		if errors.As(err, &notFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if u.ResetTokenExpiresAt == nil || s.clockNow().After(*u.ResetTokenExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil

	if err := s.userRepo.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info("Password reset completed", "user_id", u.ID.String())

	return nil
}
