package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand bills a DELIVERED order. Nil terms fall back to
// the invoice defaults (10% tax, due in 30 days, no discount).
type GenerateInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	terms   invoice.Terms

	guard guard.ConstructorGuard
}

func NewGenerateInvoiceCommand(
	orderID kernel.UUID,
	discount, tax *decimal.Decimal,
	dueDate *time.Time,
) (GenerateInvoiceCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		validateOptionalMoney("discount", discount),
		validateOptionalMoney("tax", tax),
	); err != nil {
		return GenerateInvoiceCommand{}, err
	}

	return GenerateInvoiceCommand{
		orderID: orderID,
		terms:   invoice.Terms{Discount: discount, Tax: tax, DueDate: dueDate},
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

func (c GenerateInvoiceCommand) OrderID() kernel.UUID { return c.orderID }
func (c GenerateInvoiceCommand) Terms() invoice.Terms { return c.terms }
