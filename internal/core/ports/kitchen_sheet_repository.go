package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
)

// KitchenSheetRepository defines the persistence contract for kitchen sheets.
type KitchenSheetRepository interface {
	// Add persists a new sheet with its items. A second sheet for the same
	// order yields errs.ErrAlreadyExists.
	Add(ctx context.Context, sheet *kitchen.Sheet) error

	// Update persists the sheet header and every item.
	Update(ctx context.Context, sheet *kitchen.Sheet) error

	Get(ctx context.Context, id kernel.UUID) (*kitchen.Sheet, error)

	// GetForUpdate retrieves a sheet and locks it until the transaction
	// ends. Every read-modify-write of a sheet goes through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*kitchen.Sheet, error)

	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*kitchen.Sheet, error)
}
