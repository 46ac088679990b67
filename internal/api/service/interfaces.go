package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/b2b-transaction-platform/internal/domain/transaction"
	"github.com/b2b-transaction-platform/internal/domain/user"
)

// TransactionService defines the owner-scoped transaction lifecycle operations.
// Every operation resolves the principal's user record first, so a valid token
// whose backing user has been deleted yields user.ErrUserNotFound.
type TransactionService interface {
	// Create validates the params, computes the derived total, attaches
	// best-effort AI insights and persists the transaction
	Create(ctx context.Context, principalID uuid.UUID, params transaction.Params) (*transaction.Transaction, error)

	// Get returns the transaction if the principal owns it or is an admin.
	// Returns ErrTransactionNotFound or ErrUnauthorizedAccess otherwise.
	Get(ctx context.Context, principalID uuid.UUID, id uuid.UUID) (*transaction.Transaction, error)

	// List returns the principal's own transactions, newest first
	List(ctx context.Context, principalID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)

	// SearchByCompany returns every transaction naming the company as buyer or
	// seller. Admin-only; other principals get ErrUnauthorizedAccess.
	SearchByCompany(ctx context.Context, principalID uuid.UUID, company string) ([]*transaction.Transaction, error)

	// Update overwrites the mutable business fields, recomputes the total and
	// regenerates insights from the post-update values
	Update(ctx context.Context, principalID uuid.UUID, id uuid.UUID, params transaction.Params) (*transaction.Transaction, error)

	// UpdateStatus parses the label case-insensitively and sets the status
	UpdateStatus(ctx context.Context, principalID uuid.UUID, id uuid.UUID, label string) (*transaction.Transaction, error)

	// Delete removes the transaction permanently; repeat deletes return
	// ErrTransactionNotFound
	Delete(ctx context.Context, principalID uuid.UUID, id uuid.UUID) error
}

// AuthService defines registration, login and password-reset operations
type AuthService interface {
	// Register creates a user and returns it with a signed access token.
	// Returns ErrDuplicateEmail when the email is taken.
	Register(ctx context.Context, email, password, fullName, companyName string) (*user.User, string, error)

	// Login verifies credentials and returns the user with a signed access
	// token. Returns ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, email, password string) (*user.User, string, error)

	// ForgotPassword issues a reset token and mails it to the user. Unknown
	// emails succeed silently so the endpoint cannot be used for enumeration.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword exchanges a valid, unexpired reset token for a new password
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// InsightGenerator produces the analysis text attached to transactions.
// Implementations never fail; they fall back to a fixed message.
type InsightGenerator interface {
	Generate(ctx context.Context, t *transaction.Transaction) string
}
