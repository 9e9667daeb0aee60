package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProcessReturnCommandIsNotConstructed = errors.New(
	"ProcessReturnCommand must be created via NewProcessReturnCommand constructor",
)

type ProcessReturnCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID

	guard guard.ConstructorGuard
}

func NewProcessReturnCommand(returnID kernel.UUID) (ProcessReturnCommand, error) {
	if err := returnID.Validate(); err != nil {
		return ProcessReturnCommand{}, err
	}
	return ProcessReturnCommand{returnID: returnID, guard: guard.NewConstructorGuard()}, nil
}

func (c ProcessReturnCommand) Validate() error {
	return c.guard.Validate(ErrProcessReturnCommandIsNotConstructed)
}

func (c ProcessReturnCommand) ReturnID() kernel.UUID {
	return c.returnID
}

// ProcessReturnResult reports the credited value. Invoice is nil when the
// order has not been invoiced yet.
type ProcessReturnResult struct {
	Return  *returns.Return
	Value   decimal.Decimal
	Invoice *kernel.UUID
}

// ProcessReturnCommandHandler accepts a PENDING return and credits its
// value, priced at the current catalog prices, to the invoice of the
// delivered order. The return and the invoice change in one transaction.
// The invoice status is not re-derived, so a return against a paid
// invoice leaves it PAID with payments above the new total.
type ProcessReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	clock      ports.Clock
}

func NewProcessReturnCommandHandler(uowFactory ReturnUoWFactory, clock ports.Clock) *ProcessReturnCommandHandler {
	return &ProcessReturnCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *ProcessReturnCommandHandler) Handle(ctx context.Context, command ProcessReturnCommand) (ProcessReturnResult, error) {
	if err := command.Validate(); err != nil {
		return ProcessReturnResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProcessReturnResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	returnRepo := uow.ReturnRepository()
	ret, err := returnRepo.GetForUpdate(ctx, command.ReturnID())
	if err != nil {
		return ProcessReturnResult{}, err
	}

	now := h.clock.Now()
	if err = ret.Process(now); err != nil {
		return ProcessReturnResult{}, err
	}

	value, err := h.value(ctx, uow.CatalogRepository(), ret)
	if err != nil {
		return ProcessReturnResult{}, err
	}

	if err = returnRepo.Update(ctx, ret); err != nil {
		return ProcessReturnResult{}, err
	}

	result := ProcessReturnResult{Return: ret, Value: value}

	d, err := uow.DeliveryRepository().Get(ctx, ret.DeliveryID())
	if err != nil {
		return ProcessReturnResult{}, err
	}
	invoiceRepo := uow.InvoiceRepository()
	billed, err := invoiceRepo.GetByOrderID(ctx, d.OrderID())
	switch {
	case err == nil:
		inv, lockErr := invoiceRepo.GetForUpdate(ctx, billed.ID())
		if lockErr != nil {
			return ProcessReturnResult{}, lockErr
		}
		if err = inv.ApplyReturn(value, now); err != nil {
			return ProcessReturnResult{}, err
		}
		if err = invoiceRepo.Update(ctx, inv); err != nil {
			return ProcessReturnResult{}, err
		}
		invoiceID := inv.ID()
		result.Invoice = &invoiceID
	case !errors.Is(err, errs.ErrObjectNotFound):
		return ProcessReturnResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ProcessReturnResult{}, err
	}

	return result, nil
}

func (h *ProcessReturnCommandHandler) value(ctx context.Context, catalog ports.CatalogRepository, ret *returns.Return) (decimal.Decimal, error) {
	items := ret.Items()
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := catalog.GetProducts(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}
	prices := make(map[kernel.UUID]decimal.Decimal, len(products))
	for id, product := range products {
		prices[id] = product.Price
	}

	return ret.Value(prices)
}
