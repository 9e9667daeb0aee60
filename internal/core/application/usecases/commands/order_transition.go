package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
)

// transitionOrder loads an order, applies mutate and persists the header in
// one transaction.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate func(o *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = mutate(o); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func orderTrigger(kind notification.Kind, o *order.Order) notification.Trigger {
	return notification.Trigger{
		Kind:       kind,
		Recipients: notification.ToStoreRoles(o.StoreID(), account.RoleStoreOwner, account.RoleManager),
		Payload: map[string]any{
			"orderId":     o.ID().String(),
			"orderNumber": o.Number(),
			"status":      o.Status().String(),
		},
	}
}
