package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand represents a manager approving a DRAFT or PENDING
// order for kitchen preparation.
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	approverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveOrderCommand(orderID, approverID kernel.UUID) (ApproveOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), approverID.Validate()); err != nil {
		return ApproveOrderCommand{}, err
	}
	return ApproveOrderCommand{
		orderID:    orderID,
		approverID: approverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

func (c ApproveOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c ApproveOrderCommand) ApproverID() kernel.UUID { return c.approverID }
