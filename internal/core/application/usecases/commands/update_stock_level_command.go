package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateStockLevelCommandIsNotConstructed = errors.New(
	"UpdateStockLevelCommand must be created via NewUpdateStockLevelCommand constructor",
)

// UpdateStockLevelCommand records a counted stock level. Threshold is
// optional for rows that already exist.
type UpdateStockLevelCommand struct { //nolint:recvcheck //using for validation
	storeID   kernel.UUID
	productID kernel.UUID
	level     int
	threshold *int

	guard guard.ConstructorGuard
}

func NewUpdateStockLevelCommand(storeID, productID kernel.UUID, level int, threshold *int) (UpdateStockLevelCommand, error) {
	var errList []error
	errList = append(errList, storeID.Validate(), productID.Validate())
	if level < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("level", fmt.Errorf("%d is negative", level)))
	}
	if threshold != nil && *threshold < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("threshold", fmt.Errorf("%d is negative", *threshold)))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateStockLevelCommand{}, err
	}

	if threshold != nil {
		t := *threshold
		threshold = &t
	}
	return UpdateStockLevelCommand{
		storeID:   storeID,
		productID: productID,
		level:     level,
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStockLevelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStockLevelCommandIsNotConstructed)
}

func (c UpdateStockLevelCommand) StoreID() kernel.UUID   { return c.storeID }
func (c UpdateStockLevelCommand) ProductID() kernel.UUID { return c.productID }
func (c UpdateStockLevelCommand) Level() int             { return c.level }
func (c UpdateStockLevelCommand) Threshold() *int        { return c.threshold }

// UpdateStockLevelCommandHandler upserts a store stock row and raises
// StockLow when this update is the one that takes the level to or below
// the threshold. Updates that stay low do not notify again.
type UpdateStockLevelCommandHandler struct {
	uowFactory ReplenishmentUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

func NewUpdateStockLevelCommandHandler(
	uowFactory ReplenishmentUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) *UpdateStockLevelCommandHandler {
	return &UpdateStockLevelCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h *UpdateStockLevelCommandHandler) Handle(ctx context.Context, command UpdateStockLevelCommand) (*stock.StoreStock, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog := uow.CatalogRepository()
	if _, err := catalog.GetStore(ctx, command.StoreID()); err != nil {
		return nil, err
	}
	product, err := catalog.GetProduct(ctx, command.ProductID())
	if err != nil {
		return nil, err
	}

	stockRepo := uow.StockRepository()
	now := h.clock.Now()
	var crossed bool

	row, err := stockRepo.Get(ctx, command.StoreID(), command.ProductID())
	switch {
	case err == nil:
		if crossed, err = row.SetLevel(command.Level(), command.Threshold(), now); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		if command.Threshold() == nil {
			return nil, errs.NewValueIsRequiredError("threshold")
		}
		if row, err = stock.NewStoreStock(command.StoreID(), command.ProductID(), command.Level(), *command.Threshold(), now); err != nil {
			return nil, err
		}
		crossed = row.IsLow()
	default:
		return nil, err
	}

	if err = stockRepo.Save(ctx, row); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if crossed {
		h.notifier.Notify(ctx, notification.Trigger{
			Kind:       notification.KindStockLow,
			Recipients: notification.ToStoreRoles(row.StoreID, account.RoleStoreOwner, account.RoleManager),
			Payload: map[string]any{
				"storeId":      row.StoreID.String(),
				"productId":    row.ProductID.String(),
				"sku":          product.SKU,
				"currentLevel": row.CurrentLevel,
				"threshold":    row.Threshold,
			},
		})
	}

	return row, nil
}
