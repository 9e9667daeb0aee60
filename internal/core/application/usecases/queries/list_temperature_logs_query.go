package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListTemperatureLogsQueryIsNotConstructed = errors.New(
		"ListTemperatureLogsQuery must be created via NewListTemperatureLogsQuery constructor",
	)
)

// ListTemperatureLogsQuery retrieves the cold-chain readings of a delivery.
type ListTemperatureLogsQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListTemperatureLogsQuery(deliveryID kernel.UUID) (ListTemperatureLogsQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return ListTemperatureLogsQuery{}, err
	}
	return ListTemperatureLogsQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTemperatureLogsQuery) DeliveryID() kernel.UUID { return q.deliveryID }

func (q ListTemperatureLogsQuery) Validate() error {
	return q.guard.Validate(ErrListTemperatureLogsQueryIsNotConstructed)
}

// ListTemperatureLogsQueryResponse is one reading, oldest first in the result.
type ListTemperatureLogsQueryResponse struct {
	ID          kernel.UUID
	Temperature float64
	Location    string
	IsManual    bool
	SensorID    string
	Notes       string
	IsCompliant bool
	RecordedAt  time.Time
}
