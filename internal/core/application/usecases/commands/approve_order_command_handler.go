package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ApproveOrderCommandHandler approves orders and tells the store's owners
// and managers once the approval is committed.
//
// Example:
//
//	cmd, _ := NewApproveOrderCommand(orderID, managerID)
//	approved, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidStateTransition) {
//	    // the order already left DRAFT/PENDING
//	}
type ApproveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

func NewApproveOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) *ApproveOrderCommandHandler {
	return &ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h *ApproveOrderCommandHandler) Handle(ctx context.Context, command ApproveOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	approved, err := transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) error {
		return o.Approve(command.ApproverID(), h.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, orderTrigger(notification.KindOrderApproved, approved))
	return approved, nil
}
