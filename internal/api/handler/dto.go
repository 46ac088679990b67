package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/b2b-transaction-platform/internal/domain/transaction"
	"github.com/b2b-transaction-platform/internal/domain/user"
)

// RegisterRequest represents a request to create a new user account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
}

// LoginRequest represents a credential check request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest asks for a password reset token to be mailed
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest exchanges a reset token for a new password
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	CompanyName string   `json:"company_name"`
	Roles       []string `json:"roles,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// AuthResponse carries a signed access token together with the user summary
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// TransactionRequest represents the mutable business fields of a transaction.
// Field-level validation is done by the domain layer so a single response can
// report every violation; binding stays deliberately loose here.
type TransactionRequest struct {
	BuyerCompany       string          `json:"buyer_company"`
	SellerCompany      string          `json:"seller_company"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	Quantity           int64           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Currency           string          `json:"currency"`
	PaymentTerms       string          `json:"payment_terms"`
	DeliveryDate       *time.Time      `json:"delivery_date"`
	Notes              string          `json:"notes"`
}

// UpdateStatusRequest sets the lifecycle status from a label
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListTransactionsQuery represents the optional listing filters
type ListTransactionsQuery struct {
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// TransactionResponse represents a transaction in API responses. Money fields
// are decimal strings to preserve exactness across the wire.
type TransactionResponse struct {
	ID                 string          `json:"id"`
	TransactionID      string          `json:"transaction_id"`
	OwnerID            string          `json:"owner_id"`
	BuyerCompany       string          `json:"buyer_company"`
	SellerCompany      string          `json:"seller_company"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description,omitempty"`
	Quantity           int64           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
	PaymentTerms       string          `json:"payment_terms,omitempty"`
	DeliveryDate       string          `json:"delivery_date,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	AIInsights         string          `json:"ai_insights,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}

func (r TransactionRequest) toParams() transaction.Params {
	return transaction.Params{
		BuyerCompany:       r.BuyerCompany,
		SellerCompany:      r.SellerCompany,
		ProductName:        r.ProductName,
		ProductDescription: r.ProductDescription,
		Quantity:           r.Quantity,
		UnitPrice:          r.UnitPrice,
		Currency:           r.Currency,
		PaymentTerms:       r.PaymentTerms,
		DeliveryDate:       r.DeliveryDate,
		Notes:              r.Notes,
	}
}

// mapTransactionToResponse maps a domain transaction to a response DTO
func mapTransactionToResponse(t *transaction.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:                 t.ID.String(),
		TransactionID:      t.TransactionID,
		OwnerID:            t.OwnerID.String(),
		BuyerCompany:       t.BuyerCompany,
		SellerCompany:      t.SellerCompany,
		ProductName:        t.ProductName,
		ProductDescription: t.ProductDescription,
		Quantity:           t.Quantity,
		UnitPrice:          t.UnitPrice,
		TotalAmount:        t.TotalAmount,
		Currency:           t.Currency,
		Status:             string(t.Status),
		PaymentTerms:       t.PaymentTerms,
		Notes:              t.Notes,
		AIInsights:         t.AIInsights,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          t.UpdatedAt.Format(time.RFC3339),
	}

	if t.DeliveryDate != nil {
		response.DeliveryDate = t.DeliveryDate.Format(time.RFC3339)
	}

	return response
}

// mapUserToResponse maps a domain user to a response DTO
func mapUserToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		CompanyName: u.CompanyName,
		Roles:       u.Roles,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
