package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices and their
// payments.
type InvoiceRepository interface {
	// Add persists a new invoice. A second invoice for the same order or a
	// taken invoice number yields errs.ErrAlreadyExists.
	Add(ctx context.Context, inv *invoice.Invoice) error

	// Update persists the invoice header.
	Update(ctx context.Context, inv *invoice.Invoice) error

	// AddPayment inserts a payment recorded on the invoice.
	AddPayment(ctx context.Context, payment *invoice.Payment) error

	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetForUpdate reads the invoice while holding a row lock until the
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error)

	// CountByNumberPrefix counts invoices whose number starts with prefix.
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)

	// ListPendingDueBefore returns PENDING invoices whose due date is before
	// t, locking each row until the transaction ends. Rows already locked by
	// another transaction are skipped.
	ListPendingDueBefore(ctx context.Context, t time.Time) ([]*invoice.Invoice, error)

	// UpdateStatus persists status and paidAt only, provided the stored
	// status is still from. It reports whether the row was written.
	UpdateStatus(ctx context.Context, inv *invoice.Invoice, from invoice.Status) (bool, error)
}
