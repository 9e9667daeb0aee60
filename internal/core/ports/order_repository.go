package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its items. A taken order number yields
	// errs.ErrAlreadyExists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order header (status, totals, notes, approval).
	Update(ctx context.Context, aggregate *order.Order) error

	// ReplaceItems deletes every stored item of the order and inserts the
	// current ones. It must run inside the caller's transaction.
	ReplaceItems(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountByNumberPrefix counts orders whose number starts with prefix.
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)

	// FindDraftAutoReplenish returns the DRAFT AUTO_REPLENISH order of the
	// store whose number starts with prefix, or errs.ErrObjectNotFound. The
	// row stays locked until the transaction ends.
	FindDraftAutoReplenish(ctx context.Context, storeID kernel.UUID, prefix string) (*order.Order, error)
}
