package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/b2b-transaction-platform/internal/domain/user"
	"github.com/b2b-transaction-platform/internal/platform/persistence"
)

const userColumns = `id, email, password_hash, full_name, company_name, roles,
		reset_token, reset_token_expires_at, created_at, updated_at`

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(logger *slog.Logger, db *persistence.PostgresDB) user.Repository {
	return &UserRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new user. A unique-constraint violation on the email column
// is translated to ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, company_name, roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.querier.QueryRow(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.CompanyName,
		u.Roles,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrDuplicateEmail{Email: u.Email}
		}
		r.logger.Error("Failed to create user", "email", u.Email, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	u, err := r.scanRow(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound{ID: id}
		}
		r.logger.Error("Failed to get user", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	u, err := r.scanRow(r.querier.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrEmailNotFound{Email: email}
		}
		r.logger.Error("Failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByResetToken retrieves a user holding the given password reset token
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_token = $1
	`

	u, err := r.scanRow(r.querier.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound{}
		}
		r.logger.Error("Failed to get user by reset token", "error", err)
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return u, nil
}

// Update persists all mutable user fields
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, full_name = $3, company_name = $4,
			roles = $5, reset_token = $6, reset_token_expires_at = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.querier.QueryRow(ctx, query,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.CompanyName,
		u.Roles,
		u.ResetToken,
		u.ResetTokenExpiresAt,
		u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound{ID: u.ID}
		}
		r.logger.Error("Failed to update user", "id", u.ID.String(), "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *UserRepository) scanRow(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.CompanyName,
		&u.Roles,
		&u.ResetToken,
		&u.ResetTokenExpiresAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
