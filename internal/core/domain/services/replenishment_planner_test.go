package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(shelfLife *int, active bool) *catalog.Product {
	return &catalog.Product{
		ID:            kernel.NewUUID(),
		SKU:           "SKU",
		Name:          "Product",
		Price:         decimal.NewFromInt(5),
		ShelfLifeDays: shelfLife,
		IsActive:      active,
	}
}

func days(n int) *int {
	return &n
}

func TestReplenishmentPlanner_ReorderQuantity(t *testing.T) {
	planner := services.NewReplenishmentPlanner()

	t.Run("non-perishable orders the base quantity", func(t *testing.T) {
		assert.Equal(t, 28, planner.ReorderQuantity(2, 10, product(nil, true)))
	})

	t.Run("shelf life under 7 days", func(t *testing.T) {
		// base 28, half is 14, floor is 15
		assert.Equal(t, 15, planner.ReorderQuantity(2, 10, product(days(5), true)))
		// base 57, half rounds up to 29
		assert.Equal(t, 29, planner.ReorderQuantity(3, 20, product(days(3), true)))
	})

	t.Run("shelf life under 30 days", func(t *testing.T) {
		// base 28, three quarters is 21, floor is 20
		assert.Equal(t, 21, planner.ReorderQuantity(2, 10, product(days(14), true)))
		// base 10, three quarters rounds up to 8, floor is 8
		assert.Equal(t, 8, planner.ReorderQuantity(2, 4, product(days(29), true)))
	})

	t.Run("shelf life of 30 days or more is not reduced", func(t *testing.T) {
		assert.Equal(t, 28, planner.ReorderQuantity(2, 10, product(days(30), true)))
	})
}

func TestReplenishmentPlanner_Plan(t *testing.T) {
	planner := services.NewReplenishmentPlanner()
	storeID := kernel.NewUUID()
	now := time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC)

	low := product(days(5), true)
	high := product(nil, true)
	inactive := product(nil, false)
	zero := product(nil, true)

	newStock := func(p *catalog.Product, level, threshold int) *stock.StoreStock {
		s, err := stock.NewStoreStock(storeID, p.ID, level, threshold, now)
		require.NoError(t, err)
		return s
	}

	lines := planner.Plan(
		[]*stock.StoreStock{
			newStock(low, 2, 10),
			newStock(high, 50, 10),
			newStock(inactive, 0, 10),
			newStock(zero, 0, 0),
			newStock(product(nil, true), 1, 10),
		},
		map[kernel.UUID]*catalog.Product{
			low.ID:      low,
			high.ID:     high,
			inactive.ID: inactive,
			zero.ID:     zero,
		},
	)

	require.Len(t, lines, 1)
	assert.True(t, lines[0].ProductID.IsEqual(low.ID))
	assert.Equal(t, 15, lines[0].Quantity)
}
