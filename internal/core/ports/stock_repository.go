package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for store stock levels.
type StockRepository interface {
	// Get returns the level of a product in a store or errs.ErrObjectNotFound.
	Get(ctx context.Context, storeID, productID kernel.UUID) (*stock.StoreStock, error)

	// Save inserts or updates the row keyed by store and product.
	Save(ctx context.Context, s *stock.StoreStock) error

	// ListLow returns the rows of a store at or below their threshold.
	ListLow(ctx context.Context, storeID kernel.UUID) ([]*stock.StoreStock, error)
}
