package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b2b-transaction-platform/internal/domain/transaction"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sampleTransaction(t *testing.T) *transaction.Transaction {
	t.Helper()
	tx, err := transaction.New(uuid.New(), transaction.Params{
		BuyerCompany:  "Acme",
		SellerCompany: "Globex",
		ProductName:   "Widget",
		Quantity:      10,
		UnitPrice:     decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
	return tx
}

func transactionRows(tx *transaction.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "transaction_id", "owner_id", "buyer_company", "seller_company",
		"product_name", "product_description", "quantity", "unit_price", "total_amount",
		"currency", "status", "payment_terms", "delivery_date", "notes", "ai_insights",
		"created_at", "updated_at",
	}).AddRow(
		tx.ID, tx.TransactionID, tx.OwnerID, tx.BuyerCompany, tx.SellerCompany,
		tx.ProductName, tx.ProductDescription, tx.Quantity, tx.UnitPrice, tx.TotalAmount,
		tx.Currency, tx.Status, tx.PaymentTerms, tx.DeliveryDate, tx.Notes, tx.AIInsights,
		tx.CreatedAt, tx.UpdatedAt,
	)
}

func TestTransactionRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}

	query := `
		INSERT INTO b2b_transactions \(transaction_id, owner_id, buyer_company, seller_company,
			product_name, product_description, quantity, unit_price, total_amount,
			currency, status, payment_terms, delivery_date, notes, ai_insights\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, \$10, \$11, \$12, \$13, \$14, \$15\)
		RETURNING id, created_at, updated_at
	`

	t.Run("success", func(t *testing.T) {
		tx := sampleTransaction(t)
		assignedID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(query).
			WithArgs(tx.TransactionID, tx.OwnerID, tx.BuyerCompany, tx.SellerCompany,
				tx.ProductName, tx.ProductDescription, tx.Quantity, tx.UnitPrice, tx.TotalAmount,
				tx.Currency, tx.Status, tx.PaymentTerms, tx.DeliveryDate, tx.Notes, tx.AIInsights).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(assignedID, now, now))

		err := repo.Create(ctx, tx)
		assert.NoError(t, err)
		assert.Equal(t, assignedID, tx.ID, "store-assigned id should be scanned back")
		assert.Equal(t, now, tx.CreatedAt)
		assert.Equal(t, now, tx.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		tx := sampleTransaction(t)
		expectedErr := errors.New("db error")

		mock.ExpectQuery(query).
			WithArgs(tx.TransactionID, tx.OwnerID, tx.BuyerCompany, tx.SellerCompany,
				tx.ProductName, tx.ProductDescription, tx.Quantity, tx.UnitPrice, tx.TotalAmount,
				tx.Currency, tx.Status, tx.PaymentTerms, tx.DeliveryDate, tx.Notes, tx.AIInsights).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, tx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create transaction")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		tx := sampleTransaction(t)
		tx.ID = id
		tx.CreatedAt = time.Now()
		tx.UpdatedAt = tx.CreatedAt

		mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(transactionRows(tx))

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tx.TransactionID, got.TransactionID)
		assert.True(t, got.TotalAmount.Equal(tx.TotalAmount))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(ctx, id)
		var notFound transaction.ErrTransactionNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, id, notFound.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_GetByTransactionID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}

	t.Run("success", func(t *testing.T) {
		tx := sampleTransaction(t)

		mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions\s+WHERE transaction_id = \$1`).
			WithArgs(tx.TransactionID).
			WillReturnRows(transactionRows(tx))

		got, err := repo.GetByTransactionID(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, tx.TransactionID, got.TransactionID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions\s+WHERE transaction_id = \$1`).
			WithArgs("TXN-UNKNOWN").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByTransactionID(ctx, "TXN-UNKNOWN")
		var notFound transaction.ErrTransactionNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}

	mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions\s+WHERE status = \$1\s+ORDER BY created_at DESC`).
		WithArgs(transaction.StatusPending).
		WillReturnRows(transactionRows(sampleTransaction(t)))

	result, err := repo.ListByStatus(ctx, transaction.StatusPending)
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}
	ownerID := uuid.New()

	t.Run("no filter", func(t *testing.T) {
		first := sampleTransaction(t)
		second := sampleTransaction(t)

		rows := transactionRows(first).AddRow(
			second.ID, second.TransactionID, second.OwnerID, second.BuyerCompany, second.SellerCompany,
			second.ProductName, second.ProductDescription, second.Quantity, second.UnitPrice, second.TotalAmount,
			second.Currency, second.Status, second.PaymentTerms, second.DeliveryDate, second.Notes, second.AIInsights,
			second.CreatedAt, second.UpdatedAt,
		)

		mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions WHERE owner_id = \$1 ORDER BY created_at DESC`).
			WithArgs(ownerID).
			WillReturnRows(rows)

		result, err := repo.ListByOwner(ctx, ownerID, transaction.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status filter", func(t *testing.T) {
		status := transaction.StatusCompleted

		mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions WHERE owner_id = \$1 AND status = \$2 ORDER BY created_at DESC`).
			WithArgs(ownerID, status).
			WillReturnRows(transactionRows(sampleTransaction(t)))

		result, err := repo.ListByOwner(ctx, ownerID, transaction.ListFilter{Status: &status})
		require.NoError(t, err)
		assert.Len(t, result, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("date range filter", func(t *testing.T) {
		from := time.Now().Add(-24 * time.Hour)
		to := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions WHERE owner_id = \$1 AND created_at >= \$2 AND created_at <= \$3 ORDER BY created_at DESC`).
			WithArgs(ownerID, from, to).
			WillReturnRows(transactionRows(sampleTransaction(t)))

		result, err := repo.ListByOwner(ctx, ownerID, transaction.ListFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, result, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_ListByCompany(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}

	mock.ExpectQuery(`SELECT (.+) FROM b2b_transactions\s+WHERE buyer_company = \$1 OR seller_company = \$1`).
		WithArgs("Acme").
		WillReturnRows(transactionRows(sampleTransaction(t)))

	result, err := repo.ListByCompany(ctx, "Acme")
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Update(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}

	queryPattern := `UPDATE b2b_transactions\s+SET buyer_company = \$1`

	t.Run("success refreshes updated_at", func(t *testing.T) {
		tx := sampleTransaction(t)
		tx.ID = uuid.New()
		refreshed := time.Now()

		mock.ExpectQuery(queryPattern).
			WithArgs(tx.BuyerCompany, tx.SellerCompany, tx.ProductName, tx.ProductDescription,
				tx.Quantity, tx.UnitPrice, tx.TotalAmount, tx.Currency, tx.Status,
				tx.PaymentTerms, tx.DeliveryDate, tx.Notes, tx.AIInsights, tx.ID).
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(refreshed))

		err := repo.Update(ctx, tx)
		require.NoError(t, err)
		assert.Equal(t, refreshed, tx.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		tx := sampleTransaction(t)
		tx.ID = uuid.New()

		mock.ExpectQuery(queryPattern).
			WithArgs(tx.BuyerCompany, tx.SellerCompany, tx.ProductName, tx.ProductDescription,
				tx.Quantity, tx.UnitPrice, tx.TotalAmount, tx.Currency, tx.Status,
				tx.PaymentTerms, tx.DeliveryDate, tx.Notes, tx.AIInsights, tx.ID).
			WillReturnError(pgx.ErrNoRows)

		err := repo.Update(ctx, tx)
		var notFound transaction.ErrTransactionNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &TransactionRepository{querier: mock, logger: logger}
	id := uuid.New()

	query := `DELETE FROM b2b_transactions\s+WHERE id = \$1`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := repo.Delete(ctx, id)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(ctx, id)
		var notFound transaction.ErrTransactionNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, id, notFound.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
