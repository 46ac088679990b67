package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/b2b-transaction-platform/internal/api/service"
	"github.com/b2b-transaction-platform/internal/domain/transaction"
	"github.com/b2b-transaction-platform/internal/domain/user"
)

// respondServiceError maps domain and service errors to HTTP responses.
// Anything unrecognized is logged and reported as a 500.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	var validationErr *transaction.ValidationError
	if errors.As(err, &validationErr) {
		RespondValidationError(c, validationErr)
		return
	}

	var deniedErr transaction.ErrUnauthorizedAccess
	if errors.As(err, &deniedErr) {
		RespondForbidden(c, "You are not allowed to access this transaction")
		return
	}

	var txNotFoundErr transaction.ErrTransactionNotFound
	if errors.As(err, &txNotFoundErr) {
		RespondNotFound(c, "Transaction not found")
		return
	}

	// The token was valid but the backing user row is gone
	var userNotFoundErr user.ErrUserNotFound
	if errors.As(err, &userNotFoundErr) {
		RespondUnauthorized(c, "Account no longer exists")
		return
	}

	var duplicateErr user.ErrDuplicateEmail
	if errors.As(err, &duplicateErr) {
		RespondConflict(c, "A user with this email already exists")
		return
	}

	if errors.Is(err, service.ErrInvalidCredentials) {
		RespondUnauthorized(c, "Invalid email or password")
		return
	}

	if errors.Is(err, service.ErrInvalidResetToken) {
		RespondBadRequest(c, "Invalid or expired reset token")
		return
	}

	logger.Error("Unhandled service error", "error", err)
	RespondInternalError(c)
}
