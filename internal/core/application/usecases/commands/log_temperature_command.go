package commands

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrLogTemperatureCommandIsNotConstructed = errors.New(
	"LogTemperatureCommand must be created via NewLogTemperatureCommand constructor",
)

// LogTemperatureCommand records a cold chain reading for a delivery, taken
// by a sensor or entered manually.
type LogTemperatureCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reading    delivery.Reading

	guard guard.ConstructorGuard
}

func NewLogTemperatureCommand(deliveryID kernel.UUID, reading delivery.Reading) (LogTemperatureCommand, error) {
	var locationErr error
	if strings.TrimSpace(reading.Location) == "" {
		locationErr = errs.NewValueIsRequiredError("location")
	}
	if err := errors.Join(deliveryID.Validate(), locationErr); err != nil {
		return LogTemperatureCommand{}, err
	}
	return LogTemperatureCommand{deliveryID: deliveryID, reading: reading, guard: guard.NewConstructorGuard()}, nil
}

func (c LogTemperatureCommand) Validate() error {
	return c.guard.Validate(ErrLogTemperatureCommandIsNotConstructed)
}

func (c LogTemperatureCommand) DeliveryID() kernel.UUID   { return c.deliveryID }
func (c LogTemperatureCommand) Reading() delivery.Reading { return c.reading }

// LogTemperatureCommandHandler appends a reading to the delivery log.
// Compliance is derived from the location's range; a non-compliant reading
// alerts the admins once the log entry is committed.
type LogTemperatureCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

func NewLogTemperatureCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) *LogTemperatureCommandHandler {
	return &LogTemperatureCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h *LogTemperatureCommandHandler) Handle(ctx context.Context, command LogTemperatureCommand) (*delivery.TemperatureLog, error) {
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

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	entry, err := delivery.NewTemperatureLog(kernel.NewUUID(), d.ID(), command.Reading(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.AddTemperatureLog(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if !entry.IsCompliant {
		h.notifier.Notify(ctx, notification.Trigger{
			Kind:       notification.KindTemperatureAlert,
			Recipients: notification.ToRoles(account.RoleAdmin),
			Payload: map[string]any{
				"deliveryId":  d.ID().String(),
				"orderId":     d.OrderID().String(),
				"temperature": entry.Temperature,
				"location":    entry.Location,
				"sensorId":    entry.SensorID,
			},
		})
	}

	return entry, nil
}
