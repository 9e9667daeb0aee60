package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GenerateInvoiceCommandHandler bills a DELIVERED order with a subtotal
// frozen from the order total. It is create-or-get on the order.
//
// Two unique indexes guard the insert. Losing the race on order_id returns
// the winner's invoice; losing it on the daily invoice number retries with
// a fresh number.
type GenerateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

func NewGenerateInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) *GenerateInvoiceCommandHandler {
	return &GenerateInvoiceCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h *GenerateInvoiceCommandHandler) Handle(ctx context.Context, command GenerateInvoiceCommand) (*invoice.Invoice, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		inv, storeID, err := h.generate(ctx, command)
		if err == nil {
			if storeID != nil {
				h.notifier.Notify(ctx, invoiceGenerated(inv, *storeID))
			}
			return inv, nil
		}
		if !errors.Is(err, errs.ErrAlreadyExists) {
			return nil, err
		}

		existing, readErr := h.uowFactory.Create().InvoiceRepository().GetByOrderID(ctx, command.OrderID())
		if readErr == nil {
			return existing, nil
		}
		if !errors.Is(readErr, errs.ErrObjectNotFound) {
			return nil, readErr
		}
		lastErr = err
	}

	return nil, fmt.Errorf("allocate invoice number after %d attempts: %w", maxNumberRetries, lastErr)
}

// generate returns the store to notify, or nil when the invoice already
// existed.
func (h *GenerateInvoiceCommandHandler) generate(
	ctx context.Context,
	command GenerateInvoiceCommand,
) (*invoice.Invoice, *kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	existing, err := invoiceRepo.GetByOrderID(ctx, command.OrderID())
	if err == nil {
		return existing, nil, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, err
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, nil, err
	}
	if o.Status() != order.StatusDelivered {
		return nil, nil, errs.NewInvalidStateTransitionError("order", o.Status().String(), "INVOICED")
	}

	now := h.clock.Now()
	number, err := nextDocumentNumber(ctx, invoiceRepo.CountByNumberPrefix, kernel.InvoiceNumberPrefix, now)
	if err != nil {
		return nil, nil, err
	}

	inv, err := invoice.NewInvoice(kernel.NewUUID(), number, o.ID(), o.TotalAmount(), command.Terms(), now)
	if err != nil {
		return nil, nil, err
	}

	if err = invoiceRepo.Add(ctx, inv); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	storeID := o.StoreID()
	return inv, &storeID, nil
}

func invoiceGenerated(inv *invoice.Invoice, storeID kernel.UUID) notification.Trigger {
	return notification.Trigger{
		Kind:       notification.KindInvoiceGenerated,
		Recipients: notification.ToStoreRoles(storeID, account.RoleStoreOwner, account.RoleManager),
		Payload: map[string]any{
			"invoiceId":     inv.ID().String(),
			"invoiceNumber": inv.Number(),
			"orderId":       inv.OrderID().String(),
			"totalAmount":   inv.TotalAmount().StringFixed(kernel.MoneyScale),
			"dueDate":       inv.DueDate(),
		},
	}
}
