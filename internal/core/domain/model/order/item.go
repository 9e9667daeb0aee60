package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is an order line. UnitPrice is the product price captured when the
// line was created; later catalog changes do not affect it.
type Item struct {
	id         kernel.UUID
	productID  kernel.UUID
	quantity   int
	unitPrice  decimal.Decimal
	totalPrice decimal.Decimal
}

// NewItem validates and prices a line: totalPrice = quantity × unitPrice.
func NewItem(id, productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		validateQuantity(quantity),
		kernel.ValidateNonNegativeMoney("unitPrice", unitPrice),
	); err != nil {
		return nil, err
	}

	return &Item{
		id:         id,
		productID:  productID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		totalPrice: kernel.RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity)))),
	}, nil
}

// RestoreItem rebuilds a persisted line without re-pricing it.
func RestoreItem(id, productID kernel.UUID, quantity int, unitPrice, totalPrice decimal.Decimal) *Item {
	return &Item{
		id:         id,
		productID:  productID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		totalPrice: totalPrice,
	}
}

func (i *Item) ID() kernel.UUID             { return i.id }
func (i *Item) ProductID() kernel.UUID      { return i.productID }
func (i *Item) Quantity() int               { return i.quantity }
func (i *Item) UnitPrice() decimal.Decimal  { return i.unitPrice }
func (i *Item) TotalPrice() decimal.Decimal { return i.totalPrice }

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
