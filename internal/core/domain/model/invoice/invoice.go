package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvoiceIsNotConstructed is returned for an Invoice not built by NewInvoice or RestoreInvoice.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")
)

const (
	entityName = "invoice"

	// DefaultPaymentTermDays is added to the generation time when no due date is given.
	DefaultPaymentTermDays = 30
)

// DefaultTaxRate applies to the subtotal when no tax is given.
var DefaultTaxRate = decimal.RequireFromString("0.10")

// Terms are the optional generation parameters.
type Terms struct {
	Discount *decimal.Decimal
	Tax      *decimal.Decimal
	DueDate  *time.Time
}

// Adjustment holds the fields UpdateInvoice may change. Nil fields keep
// their current value.
type Adjustment struct {
	Discount         *decimal.Decimal
	Tax              *decimal.Decimal
	ReturnAdjustment *decimal.Decimal
}

// Invoice is the bill of one delivered order.
type Invoice struct {
	id               kernel.UUID
	number           string
	orderID          kernel.UUID
	subtotal         decimal.Decimal
	discount         decimal.Decimal
	tax              decimal.Decimal
	returnAdjustment decimal.Decimal
	totalAmount      decimal.Decimal
	dueDate          time.Time
	status           Status
	paidAt           *time.Time
	payments         []*Payment
	createdAt        time.Time
	updatedAt        time.Time

	isConstructed bool
}

// NewInvoice creates an invoice from the frozen order subtotal. Tax
// defaults to DefaultTaxRate of the subtotal and the due date to
// DefaultPaymentTermDays after now.
func NewInvoice(id kernel.UUID, number string, orderID kernel.UUID, subtotal decimal.Decimal, terms Terms, now time.Time) (*Invoice, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		validateNumber(number),
		kernel.ValidateNonNegativeMoney("subtotal", subtotal),
	); err != nil {
		return nil, err
	}

	inv := &Invoice{
		id:            id,
		number:        number,
		orderID:       orderID,
		subtotal:      subtotal,
		discount:      decimal.Zero,
		tax:           kernel.RoundMoney(subtotal.Mul(DefaultTaxRate)),
		dueDate:       now.AddDate(0, 0, DefaultPaymentTermDays),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	if terms.Discount != nil {
		inv.discount = *terms.Discount
	}
	if terms.Tax != nil {
		inv.tax = *terms.Tax
	}
	if terms.DueDate != nil {
		inv.dueDate = *terms.DueDate
	}

	if err := inv.recompute(inv.discount, inv.tax, decimal.Zero); err != nil {
		return nil, err
	}
	inv.status = DeriveStatus(decimal.Zero, inv.totalAmount, inv.dueDate, now)
	if inv.status == StatusPaid {
		inv.paidAt = &now
	}

	return inv, nil
}

// Snapshot is the persisted state of an invoice.
type Snapshot struct {
	ID               kernel.UUID
	Number           string
	OrderID          kernel.UUID
	Subtotal         decimal.Decimal
	Discount         decimal.Decimal
	Tax              decimal.Decimal
	ReturnAdjustment decimal.Decimal
	TotalAmount      decimal.Decimal
	DueDate          time.Time
	Status           Status
	PaidAt           *time.Time
	Payments         []*Payment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func RestoreInvoice(s Snapshot) *Invoice {
	return &Invoice{
		id:               s.ID,
		number:           s.Number,
		orderID:          s.OrderID,
		subtotal:         s.Subtotal,
		discount:         s.Discount,
		tax:              s.Tax,
		returnAdjustment: s.ReturnAdjustment,
		totalAmount:      s.TotalAmount,
		dueDate:          s.DueDate,
		status:           s.Status,
		paidAt:           s.PaidAt,
		payments:         s.Payments,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		isConstructed:    true,
	}
}

func (inv *Invoice) Snapshot() Snapshot {
	return Snapshot{
		ID:               inv.id,
		Number:           inv.number,
		OrderID:          inv.orderID,
		Subtotal:         inv.subtotal,
		Discount:         inv.discount,
		Tax:              inv.tax,
		ReturnAdjustment: inv.returnAdjustment,
		TotalAmount:      inv.totalAmount,
		DueDate:          inv.dueDate,
		Status:           inv.status,
		PaidAt:           inv.paidAt,
		Payments:         inv.Payments(),
		CreatedAt:        inv.createdAt,
		UpdatedAt:        inv.updatedAt,
	}
}

func (inv *Invoice) Validate() error {
	if inv == nil || !inv.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (inv *Invoice) ID() kernel.UUID                   { return inv.id }
func (inv *Invoice) Number() string                    { return inv.number }
func (inv *Invoice) OrderID() kernel.UUID              { return inv.orderID }
func (inv *Invoice) Subtotal() decimal.Decimal         { return inv.subtotal }
func (inv *Invoice) Discount() decimal.Decimal         { return inv.discount }
func (inv *Invoice) Tax() decimal.Decimal              { return inv.tax }
func (inv *Invoice) ReturnAdjustment() decimal.Decimal { return inv.returnAdjustment }
func (inv *Invoice) TotalAmount() decimal.Decimal      { return inv.totalAmount }
func (inv *Invoice) DueDate() time.Time                { return inv.dueDate }
func (inv *Invoice) Status() Status                    { return inv.status }
func (inv *Invoice) PaidAt() *time.Time                { return inv.paidAt }
func (inv *Invoice) CreatedAt() time.Time              { return inv.createdAt }
func (inv *Invoice) UpdatedAt() time.Time              { return inv.updatedAt }

func (inv *Invoice) Payments() []*Payment {
	payments := make([]*Payment, len(inv.payments))
	copy(payments, inv.payments)
	return payments
}

// PaidAmount is the sum of all recorded payments.
func (inv *Invoice) PaidAmount() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(inv.payments))
	for _, p := range inv.payments {
		amounts = append(amounts, p.Amount)
	}
	return kernel.SumMoney(amounts...)
}

// Balance is what is still owed. It is negative when a processed return
// reduced the total below the paid amount.
func (inv *Invoice) Balance() decimal.Decimal {
	return inv.totalAmount.Sub(inv.PaidAmount())
}

// RecordPayment appends a payment and re-derives the status. The caller
// must hold a row lock on the invoice so the balance check and the insert
// see the same payments.
func (inv *Invoice) RecordPayment(id kernel.UUID, req PaymentRequest, now time.Time) (*Payment, error) {
	if inv.status == StatusCancelled {
		return nil, errs.NewInvalidStateTransitionError(entityName, inv.status.String(), "RECORD_PAYMENT")
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", req.Amount.String()))
	}
	if strings.TrimSpace(req.Method) == "" {
		return nil, errs.NewValueIsRequiredError("method")
	}
	if balance := inv.Balance(); req.Amount.GreaterThan(balance) {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s exceeds the remaining balance %s", req.Amount.String(), balance.String()))
	}

	payment := &Payment{
		ID:            id,
		InvoiceID:     inv.id,
		Amount:        req.Amount,
		Method:        strings.TrimSpace(req.Method),
		TransactionID: req.TransactionID,
		CollectedBy:   req.CollectedBy,
		PaymentDate:   now,
		Notes:         req.Notes,
	}
	inv.payments = append(inv.payments, payment)
	inv.rederive(now)

	return payment, nil
}

// Adjust recomputes the total from the frozen subtotal. A total below the
// amount already paid is rejected and leaves the invoice unchanged.
func (inv *Invoice) Adjust(adj Adjustment, now time.Time) error {
	if inv.status == StatusCancelled {
		return errs.NewInvalidStateTransitionError(entityName, inv.status.String(), "UPDATE")
	}

	discount, tax, returnAdjustment := inv.discount, inv.tax, inv.returnAdjustment
	if adj.Discount != nil {
		discount = *adj.Discount
	}
	if adj.Tax != nil {
		tax = *adj.Tax
	}
	if adj.ReturnAdjustment != nil {
		returnAdjustment = *adj.ReturnAdjustment
	}

	if err := inv.recompute(discount, tax, returnAdjustment); err != nil {
		return err
	}
	inv.rederive(now)
	return nil
}

// ApplyReturn credits a processed return. The status is left as is, so a
// fully paid invoice may end up with payments above its total.
func (inv *Invoice) ApplyReturn(value decimal.Decimal, now time.Time) error {
	if err := kernel.ValidateNonNegativeMoney("returnValue", value); err != nil {
		return err
	}
	inv.returnAdjustment = inv.returnAdjustment.Add(value)
	inv.totalAmount = inv.totalAmount.Sub(value)
	inv.updatedAt = now
	return nil
}

// RefreshStatus re-derives the status against now and reports whether it
// changed. Cancelled invoices are left alone.
func (inv *Invoice) RefreshStatus(now time.Time) bool {
	if inv.status == StatusCancelled {
		return false
	}
	previous := inv.status
	inv.rederive(now)
	return previous != inv.status
}

func (inv *Invoice) recompute(discount, tax, returnAdjustment decimal.Decimal) error {
	if err := errors.Join(
		kernel.ValidateNonNegativeMoney("discount", discount),
		kernel.ValidateNonNegativeMoney("tax", tax),
		kernel.ValidateNonNegativeMoney("returnAdjustment", returnAdjustment),
	); err != nil {
		return err
	}

	total := inv.subtotal.Sub(discount).Add(tax).Sub(returnAdjustment)
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", total.String()))
	}
	if paid := inv.PaidAmount(); total.LessThan(paid) {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%s is below the paid amount %s", total.String(), paid.String()))
	}

	inv.discount = discount
	inv.tax = tax
	inv.returnAdjustment = returnAdjustment
	inv.totalAmount = total
	return nil
}

func (inv *Invoice) rederive(now time.Time) {
	inv.status = DeriveStatus(inv.PaidAmount(), inv.totalAmount, inv.dueDate, now)
	switch {
	case inv.status == StatusPaid && inv.paidAt == nil:
		paidAt := now
		inv.paidAt = &paidAt
	case inv.status != StatusPaid:
		inv.paidAt = nil
	}
	inv.updatedAt = now
}

func validateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}
	return nil
}
