package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user persistence operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// ErrUserNotFound indicates a missing user record. It is also returned when a
// still-valid token references a user whose backing row has been deleted.
type ErrUserNotFound struct {
	ID uuid.UUID
}

func (e ErrUserNotFound) Error() string {
	return "user not found: " + e.ID.String()
}

// ErrEmailNotFound indicates no user is registered under the email
type ErrEmailNotFound struct {
	Email string
}

func (e ErrEmailNotFound) Error() string {
	return "no user registered with email: " + e.Email
}

// ErrDuplicateEmail indicates email uniqueness violation
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "user with email already exists: " + e.Email
}
