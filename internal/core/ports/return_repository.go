package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
)

// ReturnRepository defines the persistence contract for returns.
type ReturnRepository interface {
	Add(ctx context.Context, r *returns.Return) error
	Update(ctx context.Context, r *returns.Return) error
	Get(ctx context.Context, id kernel.UUID) (*returns.Return, error)
	// GetForUpdate locks the return row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Return, error)
	ListByDeliveryID(ctx context.Context, deliveryID kernel.UUID) ([]*returns.Return, error)
}
