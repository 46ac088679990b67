// Package postgres provides PostgreSQL implementations of the domain repositories.
// It handles all database operations while maintaining per-record atomicity and
// proper error handling for the B2B transaction platform.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/b2b-transaction-platform/internal/domain/transaction"
	"github.com/b2b-transaction-platform/internal/platform/persistence"
)

const transactionColumns = `id, transaction_id, owner_id, buyer_company, seller_company,
		product_name, product_description, quantity, unit_price, total_amount,
		currency, status, payment_terms, delivery_date, notes, ai_insights,
		created_at, updated_at`

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new transaction. The database assigns the surrogate id and
// both timestamps; they are scanned back so the caller sees the persisted state.
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	query := `
		INSERT INTO b2b_transactions (transaction_id, owner_id, buyer_company, seller_company,
			product_name, product_description, quantity, unit_price, total_amount,
			currency, status, payment_terms, delivery_date, notes, ai_insights)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := r.querier.QueryRow(ctx, query,
		t.TransactionID,
		t.OwnerID,
		t.BuyerCompany,
		t.SellerCompany,
		t.ProductName,
		t.ProductDescription,
		t.Quantity,
		t.UnitPrice,
		t.TotalAmount,
		t.Currency,
		t.Status,
		t.PaymentTerms,
		t.DeliveryDate,
		t.Notes,
		t.AIInsights,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create transaction", "transaction_id", t.TransactionID, "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its surrogate id
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM b2b_transactions
		WHERE id = $1
	`

	t, err := r.scanRow(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{ID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

// GetByTransactionID retrieves a transaction by its external token
func (r *TransactionRepository) GetByTransactionID(ctx context.Context, token string) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM b2b_transactions
		WHERE transaction_id = $1
	`

	t, err := r.scanRow(r.querier.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound{}
		}
		r.logger.Error("Failed to get transaction by token", "transaction_id", token, "error", err)
		return nil, fmt.Errorf("failed to get transaction by token: %w", err)
	}

	return t, nil
}

// ListByOwner retrieves all transactions owned by the given user, newest first.
// Optional filter fields narrow the result by status and creation-time range.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM b2b_transactions WHERE owner_id = $1`)
	args := []interface{}{ownerID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, " AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, " AND created_at <= $%d", len(args))
	}

	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.querier.Query(ctx, sb.String(), args...)
	if err != nil {
		r.logger.Error("Failed to list transactions by owner", "owner_id", ownerID.String(), "error", err)
		return nil, fmt.Errorf("failed to list transactions by owner: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByStatus retrieves all transactions in the given status, newest first
func (r *TransactionRepository) ListByStatus(ctx context.Context, status transaction.Status) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM b2b_transactions
		WHERE status = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, status)
	if err != nil {
		r.logger.Error("Failed to list transactions by status", "status", string(status), "error", err)
		return nil, fmt.Errorf("failed to list transactions by status: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByCompany retrieves all transactions where the company appears as
// either the buyer or the seller, newest first
func (r *TransactionRepository) ListByCompany(ctx context.Context, company string) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM b2b_transactions
		WHERE buyer_company = $1 OR seller_company = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, company)
	if err != nil {
		r.logger.Error("Failed to list transactions by company", "company", company, "error", err)
		return nil, fmt.Errorf("failed to list transactions by company: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Update overwrites all mutable fields of an existing transaction in a single
// statement. The database refreshes updated_at, which is scanned back so the
// returned record reflects the just-performed write.
func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	query := `
		UPDATE b2b_transactions
		SET buyer_company = $1, seller_company = $2, product_name = $3,
			product_description = $4, quantity = $5, unit_price = $6,
			total_amount = $7, currency = $8, status = $9, payment_terms = $10,
			delivery_date = $11, notes = $12, ai_insights = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING updated_at
	`

	err := r.querier.QueryRow(ctx, query,
		t.BuyerCompany,
		t.SellerCompany,
		t.ProductName,
		t.ProductDescription,
		t.Quantity,
		t.UnitPrice,
		t.TotalAmount,
		t.Currency,
		t.Status,
		t.PaymentTerms,
		t.DeliveryDate,
		t.Notes,
		t.AIInsights,
		t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return transaction.ErrTransactionNotFound{ID: t.ID}
		}
		r.logger.Error("Failed to update transaction", "id", t.ID.String(), "error", err)
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return nil
}

// Delete removes a transaction permanently. Deleting a missing record returns
// ErrTransactionNotFound so repeat deletes surface the terminal state.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM b2b_transactions
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete transaction", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound{ID: id}
	}

	return nil
}

func (r *TransactionRepository) scanRow(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := row.Scan(
		&t.ID,
		&t.TransactionID,
		&t.OwnerID,
		&t.BuyerCompany,
		&t.SellerCompany,
		&t.ProductName,
		&t.ProductDescription,
		&t.Quantity,
		&t.UnitPrice,
		&t.TotalAmount,
		&t.Currency,
		&t.Status,
		&t.PaymentTerms,
		&t.DeliveryDate,
		&t.Notes,
		&t.AIInsights,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) collect(rows pgx.Rows) ([]*transaction.Transaction, error) {
	var result []*transaction.Transaction
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return result, nil
}
