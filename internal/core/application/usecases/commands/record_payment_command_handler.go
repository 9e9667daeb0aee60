package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

// RecordPaymentCommandHandler records a payment while holding a row lock on
// the invoice, so concurrent payments cannot both pass the balance check.
// The status is re-derived from the payments; reaching PAID notifies the
// store after commit.
//
// Example:
//
//	cmd, _ := NewRecordPaymentCommand(invoiceID, decimal.RequireFromString("120.00"),
//	    "BANK_TRANSFER", "TX-8841", nil, "")
//	inv, err := handler.Handle(ctx, cmd)
//	if errs.IsValidation(err) {
//	    // non-positive amount or more than the remaining balance
//	}
type RecordPaymentCommandHandler struct {
	uowFactory InvoiceUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

func NewRecordPaymentCommandHandler(
	uowFactory InvoiceUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) *RecordPaymentCommandHandler {
	return &RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, command RecordPaymentCommand) (*invoice.Invoice, error) {
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

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.GetForUpdate(ctx, command.InvoiceID())
	if err != nil {
		return nil, err
	}

	payment, err := inv.RecordPayment(kernel.NewUUID(), command.Request(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = invoiceRepo.AddPayment(ctx, payment); err != nil {
		return nil, err
	}
	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	var trigger *notification.Trigger
	if inv.Status() == invoice.StatusPaid {
		o, orderErr := uow.OrderRepository().Get(ctx, inv.OrderID())
		if orderErr != nil {
			return nil, orderErr
		}
		trigger = &notification.Trigger{
			Kind:       notification.KindPaymentReceived,
			Recipients: notification.ToStoreRoles(o.StoreID(), account.RoleStoreOwner, account.RoleManager),
			Payload: map[string]any{
				"invoiceId":     inv.ID().String(),
				"invoiceNumber": inv.Number(),
				"amount":        payment.Amount.StringFixed(kernel.MoneyScale),
				"paidAmount":    inv.PaidAmount().StringFixed(kernel.MoneyScale),
			},
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if trigger != nil {
		h.notifier.Notify(ctx, *trigger)
	}

	return inv, nil
}
