package transaction

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/b2b-transaction-platform/internal/domain/user"
)

// DefaultCurrency is applied when a request omits the currency code
const DefaultCurrency = "USD"

// Status defines the lifecycle states of a B2B transaction
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusRejected   Status = "REJECTED"
)

// ParseStatus maps a label to a Status, accepting any casing.
// Unknown labels yield a ValidationError.
func ParseStatus(label string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(label))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", &ValidationError{Fields: []FieldError{
			{Field: "status", Message: "unknown status label: " + label},
		}}
	}
}

// Transaction represents a B2B transaction between a buyer and a seller company
type Transaction struct {
	ID                 uuid.UUID       `json:"id"`
	TransactionID      string          `json:"transaction_id"` // External token, never reassigned
	OwnerID            uuid.UUID       `json:"owner_id"`
	BuyerCompany       string          `json:"buyer_company"`
	SellerCompany      string          `json:"seller_company"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description,omitempty"`
	Quantity           int64           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	TotalAmount        decimal.Decimal `json:"total_amount"` // Always unit_price * quantity as of last write
	Currency           string          `json:"currency"`
	Status             Status          `json:"status"`
	PaymentTerms       string          `json:"payment_terms,omitempty"`
	DeliveryDate       *time.Time      `json:"delivery_date,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	AIInsights         string          `json:"ai_insights,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Params carries the mutable business fields supplied on create and update
type Params struct {
	BuyerCompany       string
	SellerCompany      string
	ProductName        string
	ProductDescription string
	Quantity           int64
	UnitPrice          decimal.Decimal
	Currency           string
	PaymentTerms       string
	DeliveryDate       *time.Time
	Notes              string
}

// validate collects every field violation before failing
func (p Params) validate() error {
	var fields []FieldError

	if strings.TrimSpace(p.BuyerCompany) == "" {
		fields = append(fields, FieldError{Field: "buyer_company", Message: "buyer company is required"})
	}
	if strings.TrimSpace(p.SellerCompany) == "" {
		fields = append(fields, FieldError{Field: "seller_company", Message: "seller company is required"})
	}
	if strings.TrimSpace(p.ProductName) == "" {
		fields = append(fields, FieldError{Field: "product_name", Message: "product name is required"})
	}
	if p.Quantity <= 0 {
		fields = append(fields, FieldError{Field: "quantity", Message: "quantity must be positive"})
	}
	if !p.UnitPrice.IsPositive() {
		fields = append(fields, FieldError{Field: "unit_price", Message: "unit price must be positive"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// New builds a transaction for the given owner: validates the params, assigns
// a fresh external token, defaults the currency and computes the total amount
// with exact decimal arithmetic. Status always starts as PENDING.
// ID, CreatedAt and UpdatedAt are assigned by the store on first persistence.
func New(ownerID uuid.UUID, p Params) (*Transaction, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	t := &Transaction{
		TransactionID: uuid.New().String(),
		OwnerID:       ownerID,
		Status:        StatusPending,
	}
	t.apply(p)

	return t, nil
}

// Apply overwrites all mutable business fields from the params, using the
// same validation and defaulting rules as New, and recomputes TotalAmount.
// TransactionID, OwnerID, Status and CreatedAt are left untouched.
func (t *Transaction) Apply(p Params) error {
	if err := p.validate(); err != nil {
		return err
	}

	t.apply(p)

	return nil
}

func (t *Transaction) apply(p Params) {
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	t.BuyerCompany = p.BuyerCompany
	t.SellerCompany = p.SellerCompany
	t.ProductName = p.ProductName
	t.ProductDescription = p.ProductDescription
	t.Quantity = p.Quantity
	t.UnitPrice = p.UnitPrice
	t.TotalAmount = p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity))
	t.Currency = currency
	t.PaymentTerms = p.PaymentTerms
	t.DeliveryDate = p.DeliveryDate
	t.Notes = p.Notes
}

// AccessibleBy reports whether the principal may read or mutate the
// transaction: the owner always may, as does any holder of the ADMIN role.
func (t *Transaction) AccessibleBy(u *user.User) bool {
	return t.OwnerID == u.ID || u.HasRole(user.RoleAdmin)
}
