package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/b2b-transaction-platform/internal/api/middleware"
	"github.com/b2b-transaction-platform/internal/api/service"
	"github.com/b2b-transaction-platform/internal/domain/transaction"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create handles POST /api/v1/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.transactionService.Create(c.Request.Context(), principalID, req.toParams())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(t))
}

// List handles GET /api/v1/transactions with optional status and date filters
func (h *TransactionHandler) List(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	var filter transaction.ListFilter
	if query.Status != "" {
		status, err := transaction.ParseStatus(query.Status)
		if err != nil {
			respondServiceError(c, h.logger, err)
			return
		}
		filter.Status = &status
	}
	if query.StartDate != "" {
		from, _, err := parseDateParam(query.StartDate)
		if err != nil {
			RespondBadRequest(c, "Invalid start_date")
			return
		}
		filter.From = &from
	}
	if query.EndDate != "" {
		to, dateOnly, err := parseDateParam(query.EndDate)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date")
			return
		}
		// A date-only end_date means the whole named day is in range
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &to
	}

	transactions, err := h.transactionService.List(c.Request.Context(), principalID, filter)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, mapTransactionToResponse(t))
	}

	RespondOK(c, responses)
}

// SearchByCompany handles GET /api/v1/transactions/search?company= (admin only)
func (h *TransactionHandler) SearchByCompany(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	company := c.Query("company")
	if company == "" {
		RespondBadRequest(c, "Query parameter company is required")
		return
	}

	transactions, err := h.transactionService.SearchByCompany(c.Request.Context(), principalID, company)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, mapTransactionToResponse(t))
	}

	RespondOK(c, responses)
}

// GetByID handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetByID(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	t, err := h.transactionService.Get(c.Request.Context(), principalID, id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(t))
}

// Update handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.transactionService.Update(c.Request.Context(), principalID, id, req.toParams())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(t))
}

// UpdateStatus handles PATCH /api/v1/transactions/:id/status
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.transactionService.UpdateStatus(c.Request.Context(), principalID, id, req.Status)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(t))
}

// Delete handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), principalID, id); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

// parseDateParam accepts either an RFC3339 timestamp or a plain date. The
// second return reports the date-only form so range ends can be widened to
// cover the full day.
func parseDateParam(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", value)
	return t, true, err
}
