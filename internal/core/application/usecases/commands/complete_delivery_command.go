package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand carries the proof of delivery captured by the
// driver. Every proof field is optional.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID
	proof      delivery.Proof

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(deliveryID, driverID kernel.UUID, proof delivery.Proof) (CompleteDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), driverID.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		proof:      proof,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CompleteDeliveryCommand) DriverID() kernel.UUID   { return c.driverID }
func (c CompleteDeliveryCommand) Proof() delivery.Proof   { return c.proof }

// CompleteDeliveryCommandHandler marks the delivery DELIVERED and the order
// DELIVERED in one transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      ports.Clock
}

func NewCompleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory, clock ports.Clock) *CompleteDeliveryCommandHandler {
	return &CompleteDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return updateDelivery(ctx, h.uowFactory, command.DeliveryID(), func(uow DeliveryUoW, d *delivery.Delivery) error {
		now := h.clock.Now()
		if err := d.Complete(command.DriverID(), command.Proof(), now); err != nil {
			return err
		}

		orderRepo := uow.OrderRepository()
		o, err := orderRepo.GetForUpdate(ctx, d.OrderID())
		if err != nil {
			return err
		}
		if err = o.MarkDelivered(now); err != nil {
			return err
		}
		return orderRepo.Update(ctx, o)
	})
}
