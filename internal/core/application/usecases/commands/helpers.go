package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type countByPrefixFunc func(ctx context.Context, prefix string) (int64, error)

// nextDocumentNumber allocates the next number of the daily series. The
// caller's insert is what makes the allocation stick.
func nextDocumentNumber(ctx context.Context, count countByPrefixFunc, prefix kernel.DocumentPrefix, now time.Time) (string, error) {
	issued, err := count(ctx, kernel.DailyPrefix(prefix, now))
	if err != nil {
		return "", err
	}
	return kernel.NewDocumentNumber(prefix, now, int(issued)+1)
}

func validateOptionalMoney(name string, amount *decimal.Decimal) error {
	if amount == nil {
		return nil
	}
	return kernel.ValidateNonNegativeMoney(name, *amount)
}
