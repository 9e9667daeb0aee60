package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new DRAFT order for a
// store.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(storeID, userID, order.TypeManual,
//	    []OrderLine{{ProductID: breadID, Quantity: 20}}, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	storeID     kernel.UUID
	createdByID kernel.UUID
	orderType   order.Type
	lines       []OrderLine
	notes       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers, the order type and every
// line quantity. An empty line list is allowed.
func NewCreateOrderCommand(
	storeID, createdByID kernel.UUID,
	orderType order.Type,
	lines []OrderLine,
	notes string,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		storeID.Validate(),
		createdByID.Validate(),
		orderType.Validate(),
		validateOrderLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		storeID:     storeID,
		createdByID: createdByID,
		orderType:   orderType,
		lines:       append([]OrderLine(nil), lines...),
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) StoreID() kernel.UUID     { return c.storeID }
func (c CreateOrderCommand) CreatedByID() kernel.UUID { return c.createdByID }
func (c CreateOrderCommand) OrderType() order.Type    { return c.orderType }
func (c CreateOrderCommand) Lines() []OrderLine       { return append([]OrderLine(nil), c.lines...) }
func (c CreateOrderCommand) Notes() string            { return c.notes }
