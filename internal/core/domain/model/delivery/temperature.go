package delivery

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Range is an inclusive acceptable temperature band in °C.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(t float64) bool {
	return t >= r.Min && t <= r.Max
}

// complianceRanges maps a storage location to its acceptable band.
var complianceRanges = map[string]Range{
	"fridge":  {Min: 2, Max: 8},
	"freezer": {Min: -18, Max: -12},
	"ambient": {Min: 15, Max: 25},
	"vehicle": {Min: 2, Max: 8},
}

// RangeFor returns the band of location. Unknown locations have none.
func RangeFor(location string) (Range, bool) {
	r, ok := complianceRanges[strings.ToLower(strings.TrimSpace(location))]
	return r, ok
}

// IsCompliant reports whether temperature is acceptable at location.
// Unknown locations are compliant.
func IsCompliant(location string, temperature float64) bool {
	r, ok := RangeFor(location)
	return !ok || r.Contains(temperature)
}

// Reading is a temperature measurement submitted for a delivery.
type Reading struct {
	Temperature float64
	Location    string
	IsManual    bool
	SensorID    string
	Notes       string
}

// TemperatureLog is an entry of the delivery temperature log. Compliance
// is always derived from the reading.
type TemperatureLog struct {
	ID          kernel.UUID
	DeliveryID  kernel.UUID
	Temperature float64
	Location    string
	IsManual    bool
	SensorID    string
	Notes       string
	IsCompliant bool
	RecordedAt  time.Time
}

func NewTemperatureLog(id, deliveryID kernel.UUID, reading Reading, now time.Time) (*TemperatureLog, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate()); err != nil {
		return nil, err
	}
	location := strings.TrimSpace(reading.Location)
	if location == "" {
		return nil, errs.NewValueIsRequiredError("location")
	}

	return &TemperatureLog{
		ID:          id,
		DeliveryID:  deliveryID,
		Temperature: reading.Temperature,
		Location:    location,
		IsManual:    reading.IsManual,
		SensorID:    reading.SensorID,
		Notes:       reading.Notes,
		IsCompliant: IsCompliant(location, reading.Temperature),
		RecordedAt:  now,
	}, nil
}
