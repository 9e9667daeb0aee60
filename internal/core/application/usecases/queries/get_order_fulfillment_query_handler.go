package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderFulfillmentQueryHandler reads the fulfillment view with one
// left-joined query instead of loading four aggregates.
type GetOrderFulfillmentQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderFulfillmentQueryHandler(db *gorm.DB) GetOrderFulfillmentQueryHandler {
	return GetOrderFulfillmentQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderFulfillmentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderFulfillmentQuery,
) (GetOrderFulfillmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.store_id,
			o.status,
			o.total_amount,
			ks.id,
			ks.status,
			d.id,
			d.status,
			d.driver_id,
			i.id,
			i.invoice_number,
			i.status,
			i.total_amount,
			COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.invoice_id = i.id), 0)
		FROM orders o
		LEFT JOIN kitchen_sheets ks ON ks.order_id = o.id
		LEFT JOIN deliveries d ON d.order_id = o.id
		LEFT JOIN invoices i ON i.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderFulfillmentQueryResponse{}, err
		}
		return GetOrderFulfillmentQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var (
		orderID, storeID              uuid.UUID
		orderNumber, orderStatus      string
		orderTotal                    decimal.Decimal
		sheetID, deliveryID, driverID uuid.NullUUID
		invoiceID                     uuid.NullUUID
		sheetStatus, deliveryStatus   sql.NullString
		invoiceNumber, invoiceStatus  sql.NullString
		invoiceTotal                  decimal.NullDecimal
		paid                          decimal.Decimal
	)
	err = rows.Scan(
		&orderID,
		&orderNumber,
		&storeID,
		&orderStatus,
		&orderTotal,
		&sheetID,
		&sheetStatus,
		&deliveryID,
		&deliveryStatus,
		&driverID,
		&invoiceID,
		&invoiceNumber,
		&invoiceStatus,
		&invoiceTotal,
		&paid,
	)
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	resp := GetOrderFulfillmentQueryResponse{
		OrderNumber: orderNumber,
		Status:      order.Status(orderStatus),
		TotalAmount: orderTotal,
	}
	if resp.OrderID, err = kernel.UUIDFromGoogle(orderID); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}
	if resp.StoreID, err = kernel.UUIDFromGoogle(storeID); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	if sheetID.Valid {
		id, idErr := kernel.UUIDFromGoogle(sheetID.UUID)
		if idErr != nil {
			return GetOrderFulfillmentQueryResponse{}, idErr
		}
		resp.KitchenSheet = &KitchenSheetStage{ID: id, Status: kitchen.Status(sheetStatus.String)}
	}

	if deliveryID.Valid {
		id, idErr := kernel.UUIDFromGoogle(deliveryID.UUID)
		if idErr != nil {
			return GetOrderFulfillmentQueryResponse{}, idErr
		}
		stage := &DeliveryStage{ID: id, Status: delivery.Status(deliveryStatus.String)}
		if driverID.Valid {
			driver, driverErr := kernel.UUIDFromGoogle(driverID.UUID)
			if driverErr != nil {
				return GetOrderFulfillmentQueryResponse{}, driverErr
			}
			stage.DriverID = &driver
		}
		resp.Delivery = stage
	}

	if invoiceID.Valid {
		id, idErr := kernel.UUIDFromGoogle(invoiceID.UUID)
		if idErr != nil {
			return GetOrderFulfillmentQueryResponse{}, idErr
		}
		resp.Invoice = &InvoiceStage{
			ID:          id,
			Number:      invoiceNumber.String,
			Status:      invoice.Status(invoiceStatus.String),
			TotalAmount: invoiceTotal.Decimal,
			PaidAmount:  paid,
		}
	}

	return resp, rows.Err()
}
