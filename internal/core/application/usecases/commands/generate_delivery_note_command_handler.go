package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GenerateDeliveryNoteCommandHandler creates the delivery of a READY order
// and moves the order to IN_DELIVERY. Like the kitchen sheet it is
// create-or-get on the order.
type GenerateDeliveryNoteCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      ports.Clock
}

func NewGenerateDeliveryNoteCommandHandler(uowFactory DeliveryUoWFactory, clock ports.Clock) *GenerateDeliveryNoteCommandHandler {
	return &GenerateDeliveryNoteCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *GenerateDeliveryNoteCommandHandler) Handle(ctx context.Context, command GenerateDeliveryNoteCommand) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	d, err := h.generate(ctx, command)
	if errors.Is(err, errs.ErrAlreadyExists) {
		return h.uowFactory.Create().DeliveryRepository().GetByOrderID(ctx, command.OrderID())
	}
	return d, err
}

func (h *GenerateDeliveryNoteCommandHandler) generate(ctx context.Context, command GenerateDeliveryNoteCommand) (*delivery.Delivery, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	existing, err := deliveryRepo.GetByOrderID(ctx, command.OrderID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if err = o.StartDelivery(now); err != nil {
		return nil, err
	}

	address := command.Address()
	if address == "" {
		store, storeErr := uow.CatalogRepository().GetStore(ctx, o.StoreID())
		if storeErr != nil {
			return nil, storeErr
		}
		address = store.DeliveryAddress()
	}
	scheduled := now
	if command.ScheduledDate() != nil {
		scheduled = *command.ScheduledDate()
	}

	d, err := delivery.NewDelivery(kernel.NewUUID(), o.ID(), scheduled, address, now)
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.Add(ctx, d); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
