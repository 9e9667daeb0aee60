package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GenerateKitchenSheetCommandHandler creates the packing sheet of an
// APPROVED order and moves the order to KITCHEN_PREP.
//
// Generation is create-or-get: when the order already has a sheet it is
// returned unchanged, whatever the order status. A concurrent generator
// that wins the insert makes this one roll back and return the winner's
// sheet.
type GenerateKitchenSheetCommandHandler struct {
	uowFactory KitchenUoWFactory
	clock      ports.Clock
}

func NewGenerateKitchenSheetCommandHandler(uowFactory KitchenUoWFactory, clock ports.Clock) *GenerateKitchenSheetCommandHandler {
	return &GenerateKitchenSheetCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *GenerateKitchenSheetCommandHandler) Handle(ctx context.Context, command GenerateKitchenSheetCommand) (*kitchen.Sheet, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	sheet, err := h.generate(ctx, command.OrderID())
	if errors.Is(err, errs.ErrAlreadyExists) {
		return h.uowFactory.Create().KitchenSheetRepository().GetByOrderID(ctx, command.OrderID())
	}
	return sheet, err
}

func (h *GenerateKitchenSheetCommandHandler) generate(ctx context.Context, orderID kernel.UUID) (*kitchen.Sheet, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sheetRepo := uow.KitchenSheetRepository()
	existing, err := sheetRepo.GetByOrderID(ctx, orderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if err = o.StartKitchenPrep(now); err != nil {
		return nil, err
	}

	items := make([]*kitchen.Item, 0, len(o.Items()))
	for _, orderItem := range o.Items() {
		item, itemErr := kitchen.NewItem(kernel.NewUUID(), orderItem.ProductID(), orderItem.Quantity())
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	sheet, err := kitchen.NewSheet(kernel.NewUUID(), orderID, items, now)
	if err != nil {
		return nil, err
	}

	if err = sheetRepo.Add(ctx, sheet); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sheet, nil
}
