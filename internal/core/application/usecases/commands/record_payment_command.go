package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand represents money collected against an invoice. The
// balance check happens in the handler, under the invoice row lock.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	request   invoice.PaymentRequest

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(
	invoiceID kernel.UUID,
	amount decimal.Decimal,
	method string,
	transactionID string,
	collectedBy *kernel.UUID,
	notes string,
) (RecordPaymentCommand, error) {
	errList := []error{invoiceID.Validate()}
	if !amount.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount.String())))
	}
	if strings.TrimSpace(method) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("method"))
	}
	if collectedBy != nil {
		errList = append(errList, collectedBy.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		invoiceID: invoiceID,
		request: invoice.PaymentRequest{
			Amount:        amount,
			Method:        strings.TrimSpace(method),
			TransactionID: transactionID,
			CollectedBy:   collectedBy,
			Notes:         notes,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) InvoiceID() kernel.UUID          { return c.invoiceID }
func (c RecordPaymentCommand) Request() invoice.PaymentRequest { return c.request }
