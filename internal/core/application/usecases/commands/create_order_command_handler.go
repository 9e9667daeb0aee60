package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// maxNumberRetries bounds how often creation is retried after another
// transaction took the same daily order number.
const maxNumberRetries = 3

// CreateOrderCommandHandler creates DRAFT orders. Item prices are copied
// from the catalog at creation time and never follow later price changes.
//
// The order number is ORD-{YYYYMMDD}-{seq4}, where seq is one more than the
// number of orders already numbered that day. Two concurrent creations can
// compute the same number; the loser hits the unique index and the whole
// transaction is retried.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		created, err := h.create(ctx, command)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errs.ErrAlreadyExists) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("allocate order number after %d attempts: %w", maxNumberRetries, lastErr)
}

func (h *CreateOrderCommandHandler) create(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog := uow.CatalogRepository()
	orderRepo := uow.OrderRepository()
	now := h.clock.Now()

	if _, err := catalog.GetStore(ctx, command.StoreID()); err != nil {
		return nil, err
	}

	items, err := priceOrderLines(ctx, catalog, command.Lines())
	if err != nil {
		return nil, err
	}

	number, err := nextDocumentNumber(ctx, orderRepo.CountByNumberPrefix, kernel.OrderNumberPrefix, now)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		command.StoreID(),
		command.CreatedByID(),
		command.OrderType(),
		items,
		command.Notes(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
