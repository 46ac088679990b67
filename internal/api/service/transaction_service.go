package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/b2b-transaction-platform/internal/domain/transaction"
	"github.com/b2b-transaction-platform/internal/domain/user"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	transactionRepo transaction.Repository
	userRepo        user.Repository
	insights        InsightGenerator
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, transactionRepo transaction.Repository, userRepo user.Repository, insights InsightGenerator) TransactionService {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		insights:        insights,
		logger:          logger,
	}
}

// Create validates the request, attaches best-effort insights and persists
func (s *TransactionServiceImpl) Create(ctx context.Context, principalID uuid.UUID, params transaction.Params) (*transaction.Transaction, error) {
	u, err := s.userRepo.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	t, err := transaction.New(u.ID, params)
	if err != nil {
		return nil, err
	}

	t.AIInsights = s.insights.Generate(ctx, t)

	if err := s.transactionRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created",
		"transaction_id", t.TransactionID,
		"owner_id", t.OwnerID.String(),
		"total_amount", t.TotalAmount.String(),
		"currency", t.Currency,
	)

	return t, nil
}

// Get returns a transaction after the ownership check
func (s *TransactionServiceImpl) Get(ctx context.Context, principalID uuid.UUID, id uuid.UUID) (*transaction.Transaction, error) {
	_, t, err := s.loadAuthorized(ctx, principalID, id)
	return t, err
}

// List returns the principal's transactions, newest first
func (s *TransactionServiceImpl) List(ctx context.Context, principalID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	u, err := s.userRepo.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	return s.transactionRepo.ListByOwner(ctx, u.ID, filter)
}

// SearchByCompany returns transactions naming the company as buyer or seller.
// Reserved for admins since it crosses ownership boundaries.
func (s *TransactionServiceImpl) SearchByCompany(ctx context.Context, principalID uuid.UUID, company string) ([]*transaction.Transaction, error) {
	u, err := s.userRepo.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}

	if !u.HasRole(user.RoleAdmin) {
		return nil, transaction.ErrUnauthorizedAccess{UserID: u.ID}
	}

	return s.transactionRepo.ListByCompany(ctx, company)
}

// Update overwrites mutable fields, recomputes the total and regenerates
// insights from the post-update values
func (s *TransactionServiceImpl) Update(ctx context.Context, principalID uuid.UUID, id uuid.UUID, params transaction.Params) (*transaction.Transaction, error) {
	_, t, err := s.loadAuthorized(ctx, principalID, id)
	if err != nil {
		return nil, err
	}

	if err := t.Apply(params); err != nil {
		return nil, err
	}

	t.AIInsights = s.insights.Generate(ctx, t)

	if err := s.transactionRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction updated",
		"transaction_id", t.TransactionID,
		"total_amount", t.TotalAmount.String(),
	)

	return t, nil
}

// UpdateStatus sets the lifecycle status from a case-insensitive label
func (s *TransactionServiceImpl) UpdateStatus(ctx context.Context, principalID uuid.UUID, id uuid.UUID, label string) (*transaction.Transaction, error) {
	status, err := transaction.ParseStatus(label)
	if err != nil {
		return nil, err
	}

	_, t, err := s.loadAuthorized(ctx, principalID, id)
	if err != nil {
		return nil, err
	}

	t.Status = status

	if err := s.transactionRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction status updated",
		"transaction_id", t.TransactionID,
		"status", string(status),
	)

	return t, nil
}

// Delete removes a transaction permanently
func (s *TransactionServiceImpl) Delete(ctx context.Context, principalID uuid.UUID, id uuid.UUID) error {
	_, t, err := s.loadAuthorized(ctx, principalID, id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(ctx, t.ID); err != nil {
		return err
	}

	s.logger.Info("Transaction deleted", "transaction_id", t.TransactionID)

	return nil
}

// loadAuthorized resolves the principal, loads the transaction and enforces
// the owner-or-admin rule shared by every record-scoped operation.
func (s *TransactionServiceImpl) loadAuthorized(ctx context.Context, principalID uuid.UUID, id uuid.UUID) (*user.User, *transaction.Transaction, error) {
	u, err := s.userRepo.GetByID(ctx, principalID)
	if err != nil {
		return nil, nil, err
	}

	t, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if !t.AccessibleBy(u) {
		s.logger.Warn("Denied transaction access",
			"user_id", u.ID.String(),
			"transaction_id", t.ID.String(),
		)
		return nil, nil, transaction.ErrUnauthorizedAccess{UserID: u.ID, TransactionID: t.ID}
	}

	return u, t, nil
}
