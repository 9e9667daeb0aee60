package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrFailDeliveryCommandIsNotConstructed = errors.New(
	"FailDeliveryCommand must be created via NewFailDeliveryCommand constructor",
)

type FailDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

func NewFailDeliveryCommand(deliveryID, driverID kernel.UUID, notes string) (FailDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), driverID.Validate()); err != nil {
		return FailDeliveryCommand{}, err
	}
	return FailDeliveryCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c FailDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryCommandIsNotConstructed)
}

func (c FailDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c FailDeliveryCommand) DriverID() kernel.UUID   { return c.driverID }
func (c FailDeliveryCommand) Notes() string           { return c.notes }

// FailDeliveryCommandHandler records an aborted delivery. The order stays
// IN_DELIVERY for the dispatcher to decide on a retry.
type FailDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      ports.Clock
}

func NewFailDeliveryCommandHandler(uowFactory DeliveryUoWFactory, clock ports.Clock) *FailDeliveryCommandHandler {
	return &FailDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *FailDeliveryCommandHandler) Handle(ctx context.Context, command FailDeliveryCommand) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return updateDelivery(ctx, h.uowFactory, command.DeliveryID(), func(_ DeliveryUoW, d *delivery.Delivery) error {
		return d.Fail(command.DriverID(), command.Notes(), h.clock.Now())
	})
}
