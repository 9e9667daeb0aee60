package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderItemsCommandIsNotConstructed = errors.New(
	"UpdateOrderItemsCommand must be created via NewUpdateOrderItemsCommand constructor",
)

// UpdateOrderItemsCommand replaces the whole item set of an editable order.
type UpdateOrderItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []OrderLine

	guard guard.ConstructorGuard
}

func NewUpdateOrderItemsCommand(orderID kernel.UUID, lines []OrderLine) (UpdateOrderItemsCommand, error) {
	if err := errors.Join(orderID.Validate(), validateOrderLines(lines)); err != nil {
		return UpdateOrderItemsCommand{}, err
	}
	return UpdateOrderItemsCommand{
		orderID: orderID,
		lines:   append([]OrderLine(nil), lines...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderItemsCommandIsNotConstructed)
}

func (c UpdateOrderItemsCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderItemsCommand) Lines() []OrderLine   { return append([]OrderLine(nil), c.lines...) }

// UpdateOrderItemsCommandHandler deletes and recreates the items of a DRAFT
// or PENDING order and recomputes its total, all in one transaction.
type UpdateOrderItemsCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewUpdateOrderItemsCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) *UpdateOrderItemsCommandHandler {
	return &UpdateOrderItemsCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *UpdateOrderItemsCommandHandler) Handle(ctx context.Context, command UpdateOrderItemsCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = replaceOrderItems(ctx, orderRepo, uow.CatalogRepository(), o, command.Lines(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// replaceOrderItems prices lines, swaps them into o and persists both the
// header and the new item rows. It is shared with the forecaster, which
// refreshes its daily draft the same way.
func replaceOrderItems(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	catalog ports.CatalogRepository,
	o *order.Order,
	lines []OrderLine,
	now time.Time,
) error {
	if err := o.CheckEditable(); err != nil {
		return err
	}

	items, err := priceOrderLines(ctx, catalog, lines)
	if err != nil {
		return err
	}
	if err = o.ReplaceItems(items, now); err != nil {
		return err
	}
	if err = orderRepo.ReplaceItems(ctx, o); err != nil {
		return err
	}
	return orderRepo.Update(ctx, o)
}
