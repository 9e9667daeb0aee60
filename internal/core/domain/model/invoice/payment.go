package invoice

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Payment is an amount collected against an invoice. Payments are never
// modified once recorded.
type Payment struct {
	ID            kernel.UUID
	InvoiceID     kernel.UUID
	Amount        decimal.Decimal
	Method        string
	TransactionID string
	CollectedBy   *kernel.UUID
	PaymentDate   time.Time
	Notes         string
}

// PaymentRequest is the caller supplied part of a Payment.
type PaymentRequest struct {
	Amount        decimal.Decimal
	Method        string
	TransactionID string
	CollectedBy   *kernel.UUID
	Notes         string
}
