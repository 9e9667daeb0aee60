package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckAndGenerateDraftOrdersCommandIsNotConstructed = errors.New(
	"CheckAndGenerateDraftOrdersCommand must be created via NewCheckAndGenerateDraftOrdersCommand constructor",
)

// CheckAndGenerateDraftOrdersCommand asks the forecaster to scan one store,
// or every active store when no store is given.
type CheckAndGenerateDraftOrdersCommand struct { //nolint:recvcheck //using for validation
	storeID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCheckAndGenerateDraftOrdersCommand(storeID *kernel.UUID) (CheckAndGenerateDraftOrdersCommand, error) {
	if storeID != nil {
		if err := storeID.Validate(); err != nil {
			return CheckAndGenerateDraftOrdersCommand{}, err
		}
		id := *storeID
		storeID = &id
	}
	return CheckAndGenerateDraftOrdersCommand{storeID: storeID, guard: guard.NewConstructorGuard()}, nil
}

func (c CheckAndGenerateDraftOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCheckAndGenerateDraftOrdersCommandIsNotConstructed)
}

// StoreID is nil when every active store should be scanned.
func (c CheckAndGenerateDraftOrdersCommand) StoreID() *kernel.UUID {
	return c.storeID
}
