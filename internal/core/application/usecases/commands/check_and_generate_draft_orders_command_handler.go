package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const autoReplenishNotes = "Auto-generated replenishment order"

// ReplenishmentOutcome says what the forecaster did for one store.
type ReplenishmentOutcome string

const (
	ReplenishmentCreated ReplenishmentOutcome = "CREATED"
	ReplenishmentUpdated ReplenishmentOutcome = "UPDATED"
	ReplenishmentSkipped ReplenishmentOutcome = "SKIPPED"
	ReplenishmentFailed  ReplenishmentOutcome = "FAILED"
)

type StoreReplenishment struct {
	StoreID kernel.UUID
	Outcome ReplenishmentOutcome
	// OrderID is set for CREATED and UPDATED.
	OrderID *kernel.UUID
	Lines   int
	Err     error
}

type ReplenishmentSummary struct {
	Stores []StoreReplenishment
}

// Count returns how many stores ended with outcome.
func (s ReplenishmentSummary) Count(outcome ReplenishmentOutcome) int {
	n := 0
	for _, store := range s.Stores {
		if store.Outcome == outcome {
			n++
		}
	}
	return n
}

// CheckAndGenerateDraftOrdersCommandHandler is the replenishment
// forecaster. For each store it plans reorder lines from low stock, then
// either refreshes the store's DRAFT AUTO_REPLENISH order numbered today or
// creates one on behalf of the system actor. Running it twice on the same
// day therefore yields one draft per store.
//
// A failing store does not stop the scan; its error is reported in the
// summary and joined into the returned error.
type CheckAndGenerateDraftOrdersCommandHandler struct {
	uowFactory    ReplenishmentUoWFactory
	createOrder   *CreateOrderCommandHandler
	planner       services.ReplenishmentPlanner
	systemActorID kernel.UUID
	clock         ports.Clock
}

func NewCheckAndGenerateDraftOrdersCommandHandler(
	uowFactory ReplenishmentUoWFactory,
	createOrder *CreateOrderCommandHandler,
	systemActorID kernel.UUID,
	clock ports.Clock,
) *CheckAndGenerateDraftOrdersCommandHandler {
	return &CheckAndGenerateDraftOrdersCommandHandler{
		uowFactory:    uowFactory,
		createOrder:   createOrder,
		planner:       services.NewReplenishmentPlanner(),
		systemActorID: systemActorID,
		clock:         clock,
	}
}

func (h *CheckAndGenerateDraftOrdersCommandHandler) Handle(
	ctx context.Context,
	command CheckAndGenerateDraftOrdersCommand,
) (ReplenishmentSummary, error) {
	if err := command.Validate(); err != nil {
		return ReplenishmentSummary{}, err
	}

	stores, err := h.stores(ctx, command.StoreID())
	if err != nil {
		return ReplenishmentSummary{}, err
	}

	summary := ReplenishmentSummary{Stores: make([]StoreReplenishment, 0, len(stores))}
	var failures []error
	for _, store := range stores {
		result, err := h.replenish(ctx, store.ID)
		if err != nil {
			result = StoreReplenishment{StoreID: store.ID, Outcome: ReplenishmentFailed, Err: err}
			failures = append(failures, fmt.Errorf("store %s: %w", store.ID, err))
		}
		summary.Stores = append(summary.Stores, result)
	}

	return summary, errors.Join(failures...)
}

func (h *CheckAndGenerateDraftOrdersCommandHandler) stores(ctx context.Context, storeID *kernel.UUID) ([]*account.Store, error) {
	catalog := h.uowFactory.Create().CatalogRepository()
	if storeID == nil {
		return catalog.ListActiveStores(ctx)
	}

	store, err := catalog.GetStore(ctx, *storeID)
	if err != nil {
		return nil, err
	}
	return []*account.Store{store}, nil
}

func (h *CheckAndGenerateDraftOrdersCommandHandler) replenish(ctx context.Context, storeID kernel.UUID) (StoreReplenishment, error) {
	skipped := StoreReplenishment{StoreID: storeID, Outcome: ReplenishmentSkipped}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StoreReplenishment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	low, err := uow.StockRepository().ListLow(ctx, storeID)
	if err != nil {
		return StoreReplenishment{}, err
	}
	if len(low) == 0 {
		return skipped, nil
	}

	productIDs := make([]kernel.UUID, 0, len(low))
	for _, s := range low {
		productIDs = append(productIDs, s.ProductID)
	}
	products, err := uow.CatalogRepository().GetProducts(ctx, productIDs)
	if err != nil {
		return StoreReplenishment{}, err
	}

	planned := h.planner.Plan(low, products)
	if len(planned) == 0 {
		return skipped, nil
	}
	lines := make([]OrderLine, 0, len(planned))
	for _, p := range planned {
		lines = append(lines, OrderLine{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	now := h.clock.Now()
	orderRepo := uow.OrderRepository()
	draft, err := orderRepo.FindDraftAutoReplenish(ctx, storeID, kernel.DailyPrefix(kernel.OrderNumberPrefix, now))
	switch {
	case err == nil:
		if err = replaceOrderItems(ctx, orderRepo, uow.CatalogRepository(), draft, lines, now); err != nil {
			return StoreReplenishment{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return StoreReplenishment{}, err
		}
		return replenished(ReplenishmentUpdated, draft, len(lines)), nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return StoreReplenishment{}, err
	}

	// Creation runs in its own transaction.
	if err = uow.Rollback(ctx); err != nil {
		return StoreReplenishment{}, err
	}

	cmd, err := NewCreateOrderCommand(storeID, h.systemActorID, order.TypeAutoReplenish, lines, autoReplenishNotes)
	if err != nil {
		return StoreReplenishment{}, err
	}
	created, err := h.createOrder.Handle(ctx, cmd)
	if err != nil {
		return StoreReplenishment{}, err
	}
	return replenished(ReplenishmentCreated, created, len(lines)), nil
}

func replenished(outcome ReplenishmentOutcome, o *order.Order, lines int) StoreReplenishment {
	id := o.ID()
	return StoreReplenishment{StoreID: o.StoreID(), Outcome: outcome, OrderID: &id, Lines: lines}
}
