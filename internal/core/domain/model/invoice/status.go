package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the settlement state of an invoice.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPartial   Status = "PARTIAL"
	StatusPaid      Status = "PAID"
	StatusOverdue   Status = "OVERDUE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

// IsOpen reports whether the invoice still expects payments.
func (s Status) IsOpen() bool {
	return s != StatusPaid && s != StatusCancelled
}

// DeriveStatus is the only source of invoice status besides cancellation:
//
//	PAID    if paid >= total
//	PARTIAL if paid > 0
//	OVERDUE if now is after dueDate
//	PENDING otherwise
func DeriveStatus(paid, total decimal.Decimal, dueDate, now time.Time) Status {
	switch {
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartial
	case now.After(dueDate):
		return StatusOverdue
	default:
		return StatusPending
	}
}
