package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateInvoiceCommandIsNotConstructed = errors.New(
	"UpdateInvoiceCommand must be created via NewUpdateInvoiceCommand constructor",
)

// UpdateInvoiceCommand changes the adjustable amounts of an invoice. Nil
// amounts keep their current value.
type UpdateInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID  kernel.UUID
	adjustment invoice.Adjustment

	guard guard.ConstructorGuard
}

func NewUpdateInvoiceCommand(
	invoiceID kernel.UUID,
	discount, tax, returnAdjustment *decimal.Decimal,
) (UpdateInvoiceCommand, error) {
	if err := errors.Join(
		invoiceID.Validate(),
		validateOptionalMoney("discount", discount),
		validateOptionalMoney("tax", tax),
		validateOptionalMoney("returnAdjustment", returnAdjustment),
	); err != nil {
		return UpdateInvoiceCommand{}, err
	}

	return UpdateInvoiceCommand{
		invoiceID: invoiceID,
		adjustment: invoice.Adjustment{
			Discount:         discount,
			Tax:              tax,
			ReturnAdjustment: returnAdjustment,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateInvoiceCommandIsNotConstructed)
}

func (c UpdateInvoiceCommand) InvoiceID() kernel.UUID         { return c.invoiceID }
func (c UpdateInvoiceCommand) Adjustment() invoice.Adjustment { return c.adjustment }

// UpdateInvoiceCommandHandler recomputes the total from the frozen subtotal
// and re-derives the status. A total below what was already paid is
// rejected.
type UpdateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	clock      ports.Clock
}

func NewUpdateInvoiceCommandHandler(uowFactory InvoiceUoWFactory, clock ports.Clock) *UpdateInvoiceCommandHandler {
	return &UpdateInvoiceCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *UpdateInvoiceCommandHandler) Handle(ctx context.Context, command UpdateInvoiceCommand) (*invoice.Invoice, error) {
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

	if err = inv.Adjust(command.Adjustment(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
