package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/ports"
)

// MarkItemPackedCommandHandler packs one sheet item. The label carries the
// product SKU and the order number, so both are read inside the same
// transaction. Packing the last item completes the sheet and moves the
// order to READY before the single commit.
//
// Example:
//
//	cmd, _ := NewMarkItemPackedCommand(sheetID, itemID, "B-0425", expiry, &cookID)
//	sheet, err := handler.Handle(ctx, cmd)
//	if err == nil && sheet.Status() == kitchen.StatusCompleted {
//	    // the order is READY for a delivery note
//	}
type MarkItemPackedCommandHandler struct {
	uowFactory KitchenUoWFactory
	clock      ports.Clock
}

func NewMarkItemPackedCommandHandler(uowFactory KitchenUoWFactory, clock ports.Clock) *MarkItemPackedCommandHandler {
	return &MarkItemPackedCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *MarkItemPackedCommandHandler) Handle(ctx context.Context, command MarkItemPackedCommand) (*kitchen.Sheet, error) {
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
	orderRepo := uow.OrderRepository()

	sheet, err := sheetRepo.GetForUpdate(ctx, command.SheetID())
	if err != nil {
		return nil, err
	}
	item, err := sheet.Item(command.ItemID())
	if err != nil {
		return nil, err
	}
	product, err := uow.CatalogRepository().GetProduct(ctx, item.ProductID())
	if err != nil {
		return nil, err
	}
	o, err := orderRepo.GetForUpdate(ctx, sheet.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	result, err := sheet.MarkItemPacked(
		command.ItemID(),
		command.BatchNumber(),
		command.ExpiryDate(),
		kitchen.LabelContext{SKU: product.SKU, OrderNumber: o.Number()},
		command.PreparedBy(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = sheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	if result.Completed {
		if err = o.MarkReady(now); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sheet, nil
}
