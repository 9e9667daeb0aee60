package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateDeliveryNoteCommandIsNotConstructed = errors.New(
	"GenerateDeliveryNoteCommand must be created via NewGenerateDeliveryNoteCommand constructor",
)

// GenerateDeliveryNoteCommand asks for the delivery of a READY order. The
// schedule defaults to the time of generation and the address to the
// store's address.
type GenerateDeliveryNoteCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	scheduledDate *time.Time
	address       string

	guard guard.ConstructorGuard
}

func NewGenerateDeliveryNoteCommand(orderID kernel.UUID, scheduledDate *time.Time, address string) (GenerateDeliveryNoteCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateDeliveryNoteCommand{}, err
	}
	return GenerateDeliveryNoteCommand{
		orderID:       orderID,
		scheduledDate: scheduledDate,
		address:       strings.TrimSpace(address),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateDeliveryNoteCommand) Validate() error {
	return c.guard.Validate(ErrGenerateDeliveryNoteCommandIsNotConstructed)
}

func (c GenerateDeliveryNoteCommand) OrderID() kernel.UUID      { return c.orderID }
func (c GenerateDeliveryNoteCommand) ScheduledDate() *time.Time { return c.scheduledDate }

// Address is empty when the store address should be used.
func (c GenerateDeliveryNoteCommand) Address() string {
	return c.address
}
