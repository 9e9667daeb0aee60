package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateKitchenSheetItemCommandIsNotConstructed = errors.New(
	"UpdateKitchenSheetItemCommand must be created via NewUpdateKitchenSheetItemCommand constructor",
)

// UpdateKitchenSheetItemCommand records batch and expiry data ahead of
// packing. Nil values leave the stored ones untouched.
type UpdateKitchenSheetItemCommand struct { //nolint:recvcheck //using for validation
	sheetID     kernel.UUID
	itemID      kernel.UUID
	batchNumber *string
	expiryDate  *time.Time

	guard guard.ConstructorGuard
}

func NewUpdateKitchenSheetItemCommand(
	sheetID, itemID kernel.UUID,
	batchNumber *string,
	expiryDate *time.Time,
) (UpdateKitchenSheetItemCommand, error) {
	if err := errors.Join(sheetID.Validate(), itemID.Validate()); err != nil {
		return UpdateKitchenSheetItemCommand{}, err
	}
	return UpdateKitchenSheetItemCommand{
		sheetID:     sheetID,
		itemID:      itemID,
		batchNumber: batchNumber,
		expiryDate:  expiryDate,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateKitchenSheetItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateKitchenSheetItemCommandIsNotConstructed)
}

func (c UpdateKitchenSheetItemCommand) SheetID() kernel.UUID   { return c.sheetID }
func (c UpdateKitchenSheetItemCommand) ItemID() kernel.UUID    { return c.itemID }
func (c UpdateKitchenSheetItemCommand) BatchNumber() *string   { return c.batchNumber }
func (c UpdateKitchenSheetItemCommand) ExpiryDate() *time.Time { return c.expiryDate }

type UpdateKitchenSheetItemCommandHandler struct {
	uowFactory KitchenUoWFactory
	clock      ports.Clock
}

func NewUpdateKitchenSheetItemCommandHandler(uowFactory KitchenUoWFactory, clock ports.Clock) *UpdateKitchenSheetItemCommandHandler {
	return &UpdateKitchenSheetItemCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle fails with a validation error when the item is not on the sheet.
func (h *UpdateKitchenSheetItemCommandHandler) Handle(ctx context.Context, command UpdateKitchenSheetItemCommand) (*kitchen.Item, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sheetRepo := uow.KitchenSheetRepository()
	sheet, err := sheetRepo.GetForUpdate(ctx, command.SheetID())
	if err != nil {
		return nil, err
	}

	item, err := sheet.UpdateItem(command.ItemID(), command.BatchNumber(), command.ExpiryDate(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = sheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
