// Package insight produces short AI-generated analyses of B2B transactions.
// Generation is best effort: any failure yields a fixed fallback message so
// transaction writes never depend on the model being reachable.
package insight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/b2b-transaction-platform/internal/domain/transaction"
)

// FallbackMessage is stored verbatim whenever insight generation fails.
const FallbackMessage = "AI insights unavailable. Please configure your OpenAI API key."

// ChatClient abstracts the completion backend so the generator can be tested
// without network access.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator turns transaction facts into a short narrative analysis.
type Generator struct {
	client ChatClient
	logger *slog.Logger
}

// NewGenerator creates an insight generator. A nil client is valid and makes
// every call return the fallback message, which keeps the platform usable
// without an API key.
func NewGenerator(logger *slog.Logger, client ChatClient) *Generator {
	return &Generator{
		client: client,
		logger: logger,
	}
}

// Generate returns the analysis text for a transaction. It never returns an
// error; callers always get either model output or FallbackMessage.
func (g *Generator) Generate(ctx context.Context, t *transaction.Transaction) string {
	if g.client == nil {
		return FallbackMessage
	}

	text, err := g.client.Complete(ctx, buildPrompt(t))
	if err != nil {
		g.logger.Warn("Insight generation failed, using fallback",
			"transaction_id", t.TransactionID,
			"error", err,
		)
		return FallbackMessage
	}
	if text == "" {
		g.logger.Warn("Insight generation returned empty response, using fallback",
			"transaction_id", t.TransactionID,
		)
		return FallbackMessage
	}

	return text
}

func buildPrompt(t *transaction.Transaction) string {
	paymentTerms := t.PaymentTerms
	if paymentTerms == "" {
		paymentTerms = "N/A"
	}

	return fmt.Sprintf(`Analyze this B2B transaction and provide brief insights:

Buyer: %s
Seller: %s
Product: %s
Quantity: %d
Unit Price: %s %s
Total Amount: %s %s
Payment Terms: %s

Provide a brief analysis covering:
1. Risk assessment
2. Pricing analysis
3. Key recommendations

Keep the response concise (3-4 sentences).`,
		t.BuyerCompany,
		t.SellerCompany,
		t.ProductName,
		t.Quantity,
		t.UnitPrice.String(), t.Currency,
		t.TotalAmount.String(), t.Currency,
		paymentTerms,
	)
}
