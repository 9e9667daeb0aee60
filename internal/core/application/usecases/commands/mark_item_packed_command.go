package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkItemPackedCommandIsNotConstructed = errors.New(
	"MarkItemPackedCommand must be created via NewMarkItemPackedCommand constructor",
)

// MarkItemPackedCommand represents a kitchen worker labelling and packing
// one sheet item. Batch number and expiry date are mandatory.
type MarkItemPackedCommand struct { //nolint:recvcheck //using for validation
	sheetID     kernel.UUID
	itemID      kernel.UUID
	batchNumber string
	expiryDate  time.Time
	preparedBy  *kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkItemPackedCommand(
	sheetID, itemID kernel.UUID,
	batchNumber string,
	expiryDate time.Time,
	preparedBy *kernel.UUID,
) (MarkItemPackedCommand, error) {
	errList := []error{sheetID.Validate(), itemID.Validate()}
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("batchNumber"))
	}
	if expiryDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("expiryDate"))
	}
	if preparedBy != nil {
		errList = append(errList, preparedBy.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return MarkItemPackedCommand{}, err
	}

	return MarkItemPackedCommand{
		sheetID:     sheetID,
		itemID:      itemID,
		batchNumber: batchNumber,
		expiryDate:  expiryDate,
		preparedBy:  preparedBy,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c MarkItemPackedCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemPackedCommandIsNotConstructed)
}

func (c MarkItemPackedCommand) SheetID() kernel.UUID     { return c.sheetID }
func (c MarkItemPackedCommand) ItemID() kernel.UUID      { return c.itemID }
func (c MarkItemPackedCommand) BatchNumber() string      { return c.batchNumber }
func (c MarkItemPackedCommand) ExpiryDate() time.Time    { return c.expiryDate }
func (c MarkItemPackedCommand) PreparedBy() *kernel.UUID { return c.preparedBy }
