package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for deliveries and
// their temperature logs.
type DeliveryRepository interface {
	// Add persists a new delivery. A second delivery for the same order
	// yields errs.ErrAlreadyExists.
	Add(ctx context.Context, d *delivery.Delivery) error

	Update(ctx context.Context, d *delivery.Delivery) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery and locks its row until the
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// AddTemperatureLog appends a log entry.
	AddTemperatureLog(ctx context.Context, log *delivery.TemperatureLog) error

	// ListTemperatureLogs returns the log of a delivery, oldest first.
	ListTemperatureLogs(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.TemperatureLog, error)
}
