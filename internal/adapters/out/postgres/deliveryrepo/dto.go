package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the deliveries row. order_id is unique.
type DeliveryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Status          string     `gorm:"size:20;not null;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	ScheduledDate   time.Time  `gorm:"not null"`
	DeliveryAddress string     `gorm:"type:text;not null"`
	Signature       string     `gorm:"type:text"`
	DeliveryPhoto   string     `gorm:"type:text"`
	Notes           string     `gorm:"type:text"`
	DeliveredAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// TemperatureLogDTO is a temperature_logs row.
type TemperatureLogDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Temperature float64   `gorm:"not null"`
	Location    string    `gorm:"size:32;not null"`
	IsManual    bool      `gorm:"not null;default:false"`
	SensorID    string    `gorm:"size:64"`
	Notes       string    `gorm:"type:text"`
	IsCompliant bool      `gorm:"not null"`
	RecordedAt  time.Time `gorm:"not null;index"`
}

func (TemperatureLogDTO) TableName() string {
	return "temperature_logs"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:              d.ID().Bytes(),
		OrderID:         d.OrderID().Bytes(),
		Status:          string(d.Status()),
		DriverID:        kernel.OptionalBytes(d.DriverID()),
		ScheduledDate:   d.ScheduledDate(),
		DeliveryAddress: d.DeliveryAddress(),
		Signature:       d.Signature(),
		DeliveryPhoto:   d.DeliveryPhoto(),
		Notes:           d.Notes(),
		DeliveredAt:     d.DeliveredAt(),
		CreatedAt:       d.CreatedAt(),
		UpdatedAt:       d.UpdatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.OptionalUUIDFromGoogle(dto.DriverID)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.Snapshot{
		ID:              id,
		OrderID:         orderID,
		Status:          delivery.Status(dto.Status),
		DriverID:        driverID,
		ScheduledDate:   dto.ScheduledDate,
		DeliveryAddress: dto.DeliveryAddress,
		Signature:       dto.Signature,
		DeliveryPhoto:   dto.DeliveryPhoto,
		Notes:           dto.Notes,
		DeliveredAt:     dto.DeliveredAt,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	}), nil
}

func logFromDomain(l *delivery.TemperatureLog) TemperatureLogDTO {
	return TemperatureLogDTO{
		ID:          l.ID.Bytes(),
		DeliveryID:  l.DeliveryID.Bytes(),
		Temperature: l.Temperature,
		Location:    l.Location,
		IsManual:    l.IsManual,
		SensorID:    l.SensorID,
		Notes:       l.Notes,
		IsCompliant: l.IsCompliant,
		RecordedAt:  l.RecordedAt,
	}
}

func logToDomain(dto TemperatureLogDTO) (*delivery.TemperatureLog, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromGoogle(dto.DeliveryID)
	if err != nil {
		return nil, err
	}
	return &delivery.TemperatureLog{
		ID:          id,
		DeliveryID:  deliveryID,
		Temperature: dto.Temperature,
		Location:    dto.Location,
		IsManual:    dto.IsManual,
		SensorID:    dto.SensorID,
		Notes:       dto.Notes,
		IsCompliant: dto.IsCompliant,
		RecordedAt:  dto.RecordedAt,
	}, nil
}
