package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(deliveryID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(deliveryID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	return AssignDriverCommand{deliveryID: deliveryID, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AssignDriverCommand) DriverID() kernel.UUID   { return c.driverID }

// AssignDriverCommandHandler assigns, or reassigns while the delivery has
// not started, a driver. The user must exist and hold the DRIVER role;
// anything else is a validation error rather than a missing object. The
// driver is notified after commit.
type AssignDriverCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

func NewAssignDriverCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) *AssignDriverCommandHandler {
	return &AssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h *AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) (*delivery.Delivery, error) {
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

	if err := requireDriver(ctx, uow.AccountRepository(), command.DriverID()); err != nil {
		return nil, err
	}

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.GetForUpdate(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = d.AssignDriver(command.DriverID(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, notification.Trigger{
		Kind:       notification.KindDeliveryAssigned,
		Recipients: notification.ToUser(command.DriverID()),
		Payload: map[string]any{
			"deliveryId":      d.ID().String(),
			"orderId":         d.OrderID().String(),
			"scheduledDate":   d.ScheduledDate(),
			"deliveryAddress": d.DeliveryAddress(),
		},
	})

	return d, nil
}

func requireDriver(ctx context.Context, accounts ports.AccountRepository, driverID kernel.UUID) error {
	user, err := accounts.GetUser(ctx, driverID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause("driverId", err)
	}
	if err != nil {
		return err
	}
	if !user.HasRole(account.RoleDriver) {
		return errs.NewValueIsInvalidErrorWithCause("driverId", fmt.Errorf("user has role %s", user.Role))
	}
	return nil
}
