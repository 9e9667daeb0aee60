package returnrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"

	"github.com/google/uuid"
)

type ReturnDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ReturnedBy  uuid.UUID `gorm:"type:uuid;not null"`
	Status      string    `gorm:"size:20;not null;index"`
	Notes       string    `gorm:"type:text"`
	ProcessedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (ReturnDTO) TableName() string {
	return "returns"
}

type ReturnItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	Position   int       `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	ExpiryDate *time.Time
	Reason     string `gorm:"type:text"`
}

func (ReturnItemDTO) TableName() string {
	return "return_items"
}

func fromDomain(r *returns.Return) (ReturnDTO, []ReturnItemDTO) {
	dto := ReturnDTO{
		ID:          r.ID().Bytes(),
		DeliveryID:  r.DeliveryID().Bytes(),
		ReturnedBy:  r.ReturnedBy().Bytes(),
		Status:      string(r.Status()),
		Notes:       r.Notes(),
		ProcessedAt: r.ProcessedAt(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}

	items := r.Items()
	itemDTOs := make([]ReturnItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ReturnItemDTO{
			ID:         item.ID.Bytes(),
			ReturnID:   dto.ID,
			ProductID:  item.ProductID.Bytes(),
			Position:   i,
			Quantity:   item.Quantity,
			ExpiryDate: item.ExpiryDate,
			Reason:     item.Reason,
		})
	}
	return dto, itemDTOs
}

func toDomain(dto ReturnDTO, itemDTOs []ReturnItemDTO) (*returns.Return, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromGoogle(dto.DeliveryID)
	if err != nil {
		return nil, err
	}
	returnedBy, err := kernel.UUIDFromGoogle(dto.ReturnedBy)
	if err != nil {
		return nil, err
	}

	items := make([]*returns.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromGoogle(itemDTO.ID)
		if itemErr != nil {
			return nil, itemErr
		}
		productID, itemErr := kernel.UUIDFromGoogle(itemDTO.ProductID)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, &returns.Item{
			ID:         itemID,
			ProductID:  productID,
			Quantity:   itemDTO.Quantity,
			ExpiryDate: itemDTO.ExpiryDate,
			Reason:     itemDTO.Reason,
		})
	}

	return returns.RestoreReturn(returns.Snapshot{
		ID:          id,
		DeliveryID:  deliveryID,
		ReturnedBy:  returnedBy,
		Status:      returns.Status(dto.Status),
		Notes:       dto.Notes,
		Items:       items,
		ProcessedAt: dto.ProcessedAt,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}), nil
}
