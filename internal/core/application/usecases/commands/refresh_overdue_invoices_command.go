package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrRefreshOverdueInvoicesCommandIsNotConstructed = errors.New(
	"RefreshOverdueInvoicesCommand must be created via NewRefreshOverdueInvoicesCommand constructor",
)

// RefreshOverdueInvoicesCommand triggers the periodic status refresh of
// open invoices past their due date.
type RefreshOverdueInvoicesCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshOverdueInvoicesCommand() RefreshOverdueInvoicesCommand {
	return RefreshOverdueInvoicesCommand{guard: guard.NewConstructorGuard()}
}

func (c RefreshOverdueInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOverdueInvoicesCommandIsNotConstructed)
}

// RefreshOverdueInvoicesCommandHandler re-derives the status of every
// PENDING invoice whose due date has passed and returns how many changed.
// Only the status columns are written, so totals and return adjustments
// committed by other transactions survive.
type RefreshOverdueInvoicesCommandHandler struct {
	uowFactory InvoiceUoWFactory
	clock      ports.Clock
}

func NewRefreshOverdueInvoicesCommandHandler(uowFactory InvoiceUoWFactory, clock ports.Clock) *RefreshOverdueInvoicesCommandHandler {
	return &RefreshOverdueInvoicesCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *RefreshOverdueInvoicesCommandHandler) Handle(ctx context.Context, command RefreshOverdueInvoicesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	invoiceRepo := uow.InvoiceRepository()
	due, err := invoiceRepo.ListPendingDueBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, inv := range due {
		from := inv.Status()
		if !inv.RefreshStatus(now) {
			continue
		}
		written, err := invoiceRepo.UpdateStatus(ctx, inv, from)
		if err != nil {
			return 0, err
		}
		if written {
			changed++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}
