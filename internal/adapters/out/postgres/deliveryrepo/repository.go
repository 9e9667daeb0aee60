package deliveryrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/dberrs"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "delivery"

type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.TranslateInsert(entityName, err)
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

func (r *GormDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dberrs.TranslateRead(entityName, d.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead("delivery of order", orderID, err)
	}
	return toDomain(dto)
}

func (r *GormDeliveryRepository) AddTemperatureLog(ctx context.Context, log *delivery.TemperatureLog) error {
	dto := logFromDomain(log)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormDeliveryRepository) ListTemperatureLogs(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.TemperatureLog, error) {
	var dtos []TemperatureLogDTO
	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	logs := make([]*delivery.TemperatureLog, 0, len(dtos))
	for _, dto := range dtos {
		l, err := logToDomain(dto)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *GormDeliveryRepository) get(query *gorm.DB, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead(entityName, id, err)
	}
	return toDomain(dto)
}
