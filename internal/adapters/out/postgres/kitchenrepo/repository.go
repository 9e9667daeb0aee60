package kitchenrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/dberrs"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "kitchen sheet"

type GormKitchenSheetRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormKitchenSheetRepository(db *gorm.DB, tracker aggregateTracker) *GormKitchenSheetRepository {
	return &GormKitchenSheetRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormKitchenSheetRepository) Add(ctx context.Context, sheet *kitchen.Sheet) error {
	if err := sheet.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(sheet)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.TranslateInsert(entityName, err)
	}
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(sheet.ID(), sheet)
	return nil
}

// Update writes the header and every item row. Items are never added or
// removed after generation.
func (r *GormKitchenSheetRepository) Update(ctx context.Context, sheet *kitchen.Sheet) error {
	if err := sheet.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(sheet)
	result := r.db.WithContext(ctx).Model(&SheetDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dberrs.TranslateRead(entityName, sheet.ID(), gorm.ErrRecordNotFound)
	}

	for i := range items {
		if err := r.db.WithContext(ctx).Model(&SheetItemDTO{}).
			Where("id = ? AND sheet_id = ?", items[i].ID, dto.ID).
			Select("*").
			Updates(&items[i]).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(sheet.ID(), sheet)
	return nil
}

func (r *GormKitchenSheetRepository) Get(ctx context.Context, id kernel.UUID) (*kitchen.Sheet, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the sheet header. Item rows are only written under
// that lock, so packs of sibling items cannot overwrite each other.
func (r *GormKitchenSheetRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*kitchen.Sheet, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormKitchenSheetRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*kitchen.Sheet, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto SheetDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead("kitchen sheet of order", orderID, err)
	}
	return r.load(ctx, dto)
}

func (r *GormKitchenSheetRepository) get(ctx context.Context, query *gorm.DB, id kernel.UUID) (*kitchen.Sheet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SheetDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead(entityName, id, err)
	}
	return r.load(ctx, dto)
}

func (r *GormKitchenSheetRepository) load(ctx context.Context, dto SheetDTO) (*kitchen.Sheet, error) {
	var items []SheetItemDTO
	if err := r.db.WithContext(ctx).Where("sheet_id = ?", dto.ID).Order("position").Find(&items).Error; err != nil {
		return nil, err
	}
	return toDomain(dto, items)
}
