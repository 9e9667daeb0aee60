package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents the refusal of a DRAFT or PENDING order.
// Notes are appended to the order notes as "Rejected: <notes>".
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID kernel.UUID, notes string) (RejectOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RejectOrderCommand{}, err
	}
	return RejectOrderCommand{orderID: orderID, notes: notes, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c RejectOrderCommand) Notes() string        { return c.notes }

type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) *RejectOrderCommandHandler {
	return &RejectOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h *RejectOrderCommandHandler) Handle(ctx context.Context, command RejectOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	rejected, err := transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) error {
		return o.Reject(command.Notes(), h.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, orderTrigger(notification.KindOrderRejected, rejected))
	return rejected, nil
}
