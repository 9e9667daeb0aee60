package returnrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/dberrs"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "return"

type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormReturnRepository) Add(ctx context.Context, ret *returns.Return) error {
	if err := ret.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(ret)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.TranslateInsert(entityName, err)
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(ret.ID(), ret)
	return nil
}

// Update writes the header only; return items are immutable.
func (r *GormReturnRepository) Update(ctx context.Context, ret *returns.Return) error {
	if err := ret.Validate(); err != nil {
		return err
	}

	dto, _ := fromDomain(ret)
	result := r.db.WithContext(ctx).Model(&ReturnDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dberrs.TranslateRead(entityName, ret.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(ret.ID(), ret)
	return nil
}

func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the return so it is processed or rejected once.
func (r *GormReturnRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*returns.Return, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormReturnRepository) ListByDeliveryID(ctx context.Context, deliveryID kernel.UUID) ([]*returns.Return, error) {
	var dtos []ReturnDTO
	if err := r.db.WithContext(ctx).Where("delivery_id = ?", deliveryID.Bytes()).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]*returns.Return, 0, len(dtos))
	for _, dto := range dtos {
		ret, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		result = append(result, ret)
	}
	return result, nil
}

func (r *GormReturnRepository) get(ctx context.Context, query *gorm.DB, id kernel.UUID) (*returns.Return, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead(entityName, id, err)
	}
	return r.load(ctx, dto)
}

func (r *GormReturnRepository) load(ctx context.Context, dto ReturnDTO) (*returns.Return, error) {
	var items []ReturnItemDTO
	if err := r.db.WithContext(ctx).Where("return_id = ?", dto.ID).Order("position").Find(&items).Error; err != nil {
		return nil, err
	}
	return toDomain(dto, items)
}
