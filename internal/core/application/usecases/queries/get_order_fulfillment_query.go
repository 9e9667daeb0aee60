package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderFulfillmentQueryIsNotConstructed = errors.New(
		"GetOrderFulfillmentQuery must be created via NewGetOrderFulfillmentQuery constructor",
	)
)

// GetOrderFulfillmentQuery retrieves the progress of one order through the
// kitchen, delivery and invoicing stages.
//
// Example:
//
//	query, err := NewGetOrderFulfillmentQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get fulfillment: %w", err)
//	}
//
//	if view.Invoice != nil {
//	    fmt.Printf("%s invoiced as %s\n", view.OrderNumber, view.Invoice.Number)
//	}
type GetOrderFulfillmentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderFulfillmentQuery(orderID kernel.UUID) (GetOrderFulfillmentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderFulfillmentQuery{}, err
	}
	return GetOrderFulfillmentQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderFulfillmentQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetOrderFulfillmentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderFulfillmentQueryIsNotConstructed)
}

// GetOrderFulfillmentQueryResponse is the order with the downstream
// documents generated so far. A stage not reached yet is nil.
type GetOrderFulfillmentQueryResponse struct {
	OrderID     kernel.UUID
	OrderNumber string
	StoreID     kernel.UUID
	Status      order.Status
	TotalAmount decimal.Decimal

	KitchenSheet *KitchenSheetStage
	Delivery     *DeliveryStage
	Invoice      *InvoiceStage
}

type KitchenSheetStage struct {
	ID     kernel.UUID
	Status kitchen.Status
}

type DeliveryStage struct {
	ID       kernel.UUID
	Status   delivery.Status
	DriverID *kernel.UUID
}

type InvoiceStage struct {
	ID          kernel.UUID
	Number      string
	Status      invoice.Status
	TotalAmount decimal.Decimal
	// PaidAmount is the sum of recorded payments.
	PaidAmount decimal.Decimal
}
