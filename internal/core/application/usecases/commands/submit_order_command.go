package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand asks for a DRAFT order to be sent for approval.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(orderID kernel.UUID) (SubmitOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SubmitOrderCommand{}, err
	}
	return SubmitOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SubmitOrderCommandHandler moves DRAFT orders to PENDING.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewSubmitOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) *SubmitOrderCommandHandler {
	return &SubmitOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, command SubmitOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) error {
		return o.Submit(h.clock.Now())
	})
}
