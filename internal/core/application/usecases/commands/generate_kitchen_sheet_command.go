package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateKitchenSheetCommandIsNotConstructed = errors.New(
	"GenerateKitchenSheetCommand must be created via NewGenerateKitchenSheetCommand constructor",
)

type GenerateKitchenSheetCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateKitchenSheetCommand(orderID kernel.UUID) (GenerateKitchenSheetCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateKitchenSheetCommand{}, err
	}
	return GenerateKitchenSheetCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c GenerateKitchenSheetCommand) Validate() error {
	return c.guard.Validate(ErrGenerateKitchenSheetCommandIsNotConstructed)
}

func (c GenerateKitchenSheetCommand) OrderID() kernel.UUID {
	return c.orderID
}
