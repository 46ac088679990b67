package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows owner-scoped listings. Nil fields are ignored.
type ListFilter struct {
	Status *Status
	From   *time.Time
	To     *time.Time
}

// Repository defines transaction persistence operations.
// All listings are ordered by creation time descending.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetByTransactionID(ctx context.Context, token string) (*Transaction, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	ListByStatus(ctx context.Context, status Status) ([]*Transaction, error)

	// ListByCompany matches the name against either the buyer or seller field
	ListByCompany(ctx context.Context, company string) ([]*Transaction, error)

	// Update persists all mutable fields atomically (single-row, all-or-nothing)
	Update(ctx context.Context, t *Transaction) error

	// Delete removes the record permanently; no tombstone is retained
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrTransactionNotFound indicates a missing transaction record
type ErrTransactionNotFound struct {
	ID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.ID.String()
}

// ErrUnauthorizedAccess indicates the principal is neither the owner nor an admin
type ErrUnauthorizedAccess struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

func (e ErrUnauthorizedAccess) Error() string {
	return "user " + e.UserID.String() + " is not authorized to access transaction " + e.TransactionID.String()
}

// FieldError describes a single field violation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation of a request so the
// surface can report full-field feedback instead of failing on the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}
