package kitchenrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"

	"github.com/google/uuid"
)

// SheetDTO is the kitchen_sheets row. The unique order_id index backs the
// create-or-get generation.
type SheetDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Status      string    `gorm:"size:20;not null"`
	CompletedAt *time.Time
	PreparedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false"`
}

func (SheetDTO) TableName() string {
	return "kitchen_sheets"
}

type SheetItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SheetID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	Position    int       `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	BatchNumber string    `gorm:"size:64"`
	ExpiryDate  *time.Time
	Barcode     string `gorm:"size:64"`
	QRCode      string `gorm:"column:qr_code;type:text"`
	IsPacked    bool   `gorm:"not null;default:false"`
}

func (SheetItemDTO) TableName() string {
	return "kitchen_sheet_items"
}

func fromDomain(s *kitchen.Sheet) (SheetDTO, []SheetItemDTO) {
	dto := SheetDTO{
		ID:          s.ID().Bytes(),
		OrderID:     s.OrderID().Bytes(),
		Status:      string(s.Status()),
		CompletedAt: s.CompletedAt(),
		PreparedBy:  kernel.OptionalBytes(s.PreparedBy()),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}

	items := s.Items()
	itemDTOs := make([]SheetItemDTO, 0, len(items))
	for i, item := range items {
		snap := item.Snapshot()
		itemDTOs = append(itemDTOs, SheetItemDTO{
			ID:          snap.ID.Bytes(),
			SheetID:     dto.ID,
			ProductID:   snap.ProductID.Bytes(),
			Position:    i,
			Quantity:    snap.Quantity,
			BatchNumber: snap.BatchNumber,
			ExpiryDate:  snap.ExpiryDate,
			Barcode:     snap.Barcode,
			QRCode:      snap.QRCode,
			IsPacked:    snap.IsPacked,
		})
	}
	return dto, itemDTOs
}

func toDomain(dto SheetDTO, itemDTOs []SheetItemDTO) (*kitchen.Sheet, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	preparedBy, err := kernel.OptionalUUIDFromGoogle(dto.PreparedBy)
	if err != nil {
		return nil, err
	}

	items := make([]*kitchen.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromGoogle(itemDTO.ID)
		if itemErr != nil {
			return nil, itemErr
		}
		productID, itemErr := kernel.UUIDFromGoogle(itemDTO.ProductID)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, kitchen.RestoreItem(kitchen.ItemSnapshot{
			ID:          itemID,
			ProductID:   productID,
			Quantity:    itemDTO.Quantity,
			BatchNumber: itemDTO.BatchNumber,
			ExpiryDate:  itemDTO.ExpiryDate,
			Barcode:     itemDTO.Barcode,
			QRCode:      itemDTO.QRCode,
			IsPacked:    itemDTO.IsPacked,
		}))
	}

	return kitchen.RestoreSheet(kitchen.Snapshot{
		ID:          id,
		OrderID:     orderID,
		Status:      kitchen.Status(dto.Status),
		CompletedAt: dto.CompletedAt,
		PreparedBy:  preparedBy,
		Items:       items,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}), nil
}
