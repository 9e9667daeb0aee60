package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Items live in order_items.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber  string          `gorm:"size:32;not null;uniqueIndex"`
	StoreID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderType    string          `gorm:"size:20;not null"`
	Status       string          `gorm:"size:20;not null;index"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes        string          `gorm:"type:text"`
	CreatedByID  uuid.UUID       `gorm:"type:uuid;not null"`
	ApprovedByID *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is an order_items row. Position keeps the caller's order.
type OrderItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Position   int             `gorm:"not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID().Bytes(),
		OrderNumber:  o.Number(),
		StoreID:      o.StoreID().Bytes(),
		OrderType:    string(o.Type()),
		Status:       string(o.Status()),
		TotalAmount:  o.TotalAmount(),
		Notes:        o.Notes(),
		CreatedByID:  o.CreatedByID().Bytes(),
		ApprovedByID: kernel.OptionalBytes(o.ApprovedByID()),
		ApprovedAt:   o.ApprovedAt(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func itemsFromDomain(o *order.Order) []OrderItemDTO {
	items := o.Items()
	dtos := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, OrderItemDTO{
			ID:         item.ID().Bytes(),
			OrderID:    o.ID().Bytes(),
			ProductID:  item.ProductID().Bytes(),
			Position:   i,
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			TotalPrice: item.TotalPrice(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO, itemDTOs []OrderItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromGoogle(dto.StoreID)
	if err != nil {
		return nil, err
	}
	createdByID, err := kernel.UUIDFromGoogle(dto.CreatedByID)
	if err != nil {
		return nil, err
	}
	approvedByID, err := kernel.OptionalUUIDFromGoogle(dto.ApprovedByID)
	if err != nil {
		return nil, err
	}

	status := order.Status(dto.Status)
	if err := status.Validate(); err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromGoogle(itemDTO.ID)
		if itemErr != nil {
			return nil, itemErr
		}
		productID, itemErr := kernel.UUIDFromGoogle(itemDTO.ProductID)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, order.RestoreItem(itemID, productID, itemDTO.Quantity, itemDTO.UnitPrice, itemDTO.TotalPrice))
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		Number:       dto.OrderNumber,
		StoreID:      storeID,
		OrderType:    order.Type(dto.OrderType),
		Status:       status,
		TotalAmount:  dto.TotalAmount,
		Notes:        dto.Notes,
		CreatedByID:  createdByID,
		ApprovedByID: approvedByID,
		ApprovedAt:   dto.ApprovedAt,
		Items:        items,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	}), nil
}
