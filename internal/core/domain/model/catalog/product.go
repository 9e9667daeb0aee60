// Package catalog holds the product reference data read by the fulfillment
// core. Products are owned by the catalog service; the core only reads the
// current price, SKU, shelf life and active flag.
package catalog

import (
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Product is a read model of a sellable item.
type Product struct {
	ID    kernel.UUID
	SKU   string
	Name  string
	Price decimal.Decimal
	// ShelfLifeDays is nil when the product does not expire.
	ShelfLifeDays *int
	IsActive      bool
}

// HasShelfLifeUnder reports whether the product expires in fewer than days.
func (p *Product) HasShelfLifeUnder(days int) bool {
	return p.ShelfLifeDays != nil && *p.ShelfLifeDays < days
}
