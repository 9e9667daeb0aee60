package services

import (
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"

	"github.com/shopspring/decimal"
)

const (
	// shortShelfLifeDays and mediumShelfLifeDays bound the perishable tiers.
	shortShelfLifeDays  = 7
	mediumShelfLifeDays = 30

	// coverageFactor is how many thresholds worth of stock a reorder aims for.
	coverageFactor = 3
)

var (
	shortShelfLifeRatio  = decimal.RequireFromString("0.5")
	mediumShelfLifeRatio = decimal.RequireFromString("0.75")
)

// ReorderLine is a product the forecaster should order for a store.
type ReorderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// ReplenishmentPlanner turns low stock rows into reorder lines.
//
// Business rules:
//   - only rows at or below their threshold and active products qualify
//   - base quantity is threshold×3 − currentLevel
//   - shelf life under 7 days orders max(threshold+5, ⌈base×0.5⌉)
//   - shelf life under 30 days orders max(threshold×2, ⌈base×0.75⌉)
//   - non-positive quantities are dropped
type ReplenishmentPlanner struct{}

func NewReplenishmentPlanner() ReplenishmentPlanner {
	return ReplenishmentPlanner{}
}

// ReorderQuantity computes the quantity to order for one stock row.
func (ReplenishmentPlanner) ReorderQuantity(currentLevel, threshold int, product *catalog.Product) int {
	base := threshold*coverageFactor - currentLevel

	switch {
	case product.HasShelfLifeUnder(shortShelfLifeDays):
		return max(threshold+5, ceilRatio(base, shortShelfLifeRatio))
	case product.HasShelfLifeUnder(mediumShelfLifeDays):
		return max(threshold*2, ceilRatio(base, mediumShelfLifeRatio))
	default:
		return base
	}
}

// Plan returns reorder lines in stock order. Rows whose product is unknown,
// inactive or above threshold are skipped.
func (p ReplenishmentPlanner) Plan(stocks []*stock.StoreStock, products map[kernel.UUID]*catalog.Product) []ReorderLine {
	lines := make([]ReorderLine, 0, len(stocks))
	for _, s := range stocks {
		if !s.IsLow() {
			continue
		}
		product, ok := products[s.ProductID]
		if !ok || !product.IsActive {
			continue
		}

		qty := p.ReorderQuantity(s.CurrentLevel, s.Threshold, product)
		if qty <= 0 {
			continue
		}
		lines = append(lines, ReorderLine{ProductID: s.ProductID, Quantity: qty})
	}
	return lines
}

func ceilRatio(n int, ratio decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(n)).Mul(ratio).Ceil().IntPart())
}
