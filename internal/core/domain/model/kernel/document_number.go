package kernel

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// DocumentPrefix distinguishes independent daily numbering series.
type DocumentPrefix string

const (
	OrderNumberPrefix   DocumentPrefix = "ORD"
	InvoiceNumberPrefix DocumentPrefix = "INV"
)

const documentDayLayout = "20060102"

// DailyPrefix returns the shared prefix of every number issued on day,
// e.g. "ORD-20260115-". Repositories count existing numbers by this prefix.
func DailyPrefix(prefix DocumentPrefix, day time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, day.Format(documentDayLayout))
}

// NewDocumentNumber formats {prefix}-{YYYYMMDD}-{seq4}. seq starts at 1.
func NewDocumentNumber(prefix DocumentPrefix, day time.Time, seq int) (string, error) {
	if seq <= 0 {
		return "", errs.NewValueIsOutOfRangeError("document sequence", seq, 1, "unbounded")
	}
	return fmt.Sprintf("%s%04d", DailyPrefix(prefix, day), seq), nil
}
