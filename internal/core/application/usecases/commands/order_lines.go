package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// OrderLine is a requested product quantity. Prices are taken from the
// catalog when the line becomes an order item.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

func validateOrderLines(lines []OrderLine) error {
	var result []error
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			result = append(result, fmt.Errorf("items[%d]: %w", i, err))
		}
		if line.Quantity <= 0 {
			result = append(result, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", line.Quantity),
			))
		}
	}
	return errors.Join(result...)
}

// priceOrderLines snapshots the current catalog price of every line. An
// unknown product fails with errs.ErrObjectNotFound.
func priceOrderLines(ctx context.Context, catalog ports.CatalogRepository, lines []OrderLine) ([]*order.Item, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", line.ProductID)
		}
		item, err := order.NewItem(kernel.NewUUID(), line.ProductID, line.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
