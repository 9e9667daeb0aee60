package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand is sent by the assigned driver when leaving with the
// goods.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(deliveryID, driverID kernel.UUID) (StartDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), driverID.Validate()); err != nil {
		return StartDeliveryCommand{}, err
	}
	return StartDeliveryCommand{deliveryID: deliveryID, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

func (c StartDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c StartDeliveryCommand) DriverID() kernel.UUID   { return c.driverID }

type StartDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      ports.Clock
}

func NewStartDeliveryCommandHandler(uowFactory DeliveryUoWFactory, clock ports.Clock) *StartDeliveryCommandHandler {
	return &StartDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, command StartDeliveryCommand) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return updateDelivery(ctx, h.uowFactory, command.DeliveryID(), func(_ DeliveryUoW, d *delivery.Delivery) error {
		return d.Start(command.DriverID(), h.clock.Now())
	})
}

// updateDelivery loads a delivery, applies mutate and persists it in one
// transaction. mutate may touch other aggregates through uow.
func updateDelivery(
	ctx context.Context,
	uowFactory DeliveryUoWFactory,
	deliveryID kernel.UUID,
	mutate func(uow DeliveryUoW, d *delivery.Delivery) error,
) (*delivery.Delivery, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.GetForUpdate(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if err = mutate(uow, d); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
