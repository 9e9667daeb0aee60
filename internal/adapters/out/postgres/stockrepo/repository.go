package stockrepo

import (
	"context"
	"time"

	"fulfillment/internal/adapters/out/postgres/dberrs"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreStockDTO is keyed by (store_id, product_id).
type StoreStockDTO struct {
	StoreID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CurrentLevel int       `gorm:"not null"`
	Threshold    int       `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (StoreStockDTO) TableName() string {
	return "store_stocks"
}

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) Get(ctx context.Context, storeID, productID kernel.UUID) (*stock.StoreStock, error) {
	var dto StoreStockDTO
	err := r.db.WithContext(ctx).
		First(&dto, "store_id = ? AND product_id = ?", storeID.Bytes(), productID.Bytes()).Error
	if err != nil {
		return nil, dberrs.TranslateRead("store stock", storeID.String()+"/"+productID.String(), err)
	}
	return toDomain(dto)
}

// Save upserts the row on its composite key.
func (r *GormStockRepository) Save(ctx context.Context, s *stock.StoreStock) error {
	dto := StoreStockDTO{
		StoreID:      s.StoreID.Bytes(),
		ProductID:    s.ProductID.Bytes(),
		CurrentLevel: s.CurrentLevel,
		Threshold:    s.Threshold,
		UpdatedAt:    s.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_level", "threshold", "updated_at"}),
	}).Create(&dto).Error
}

func (r *GormStockRepository) ListLow(ctx context.Context, storeID kernel.UUID) ([]*stock.StoreStock, error) {
	var dtos []StoreStockDTO
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND current_level <= threshold", storeID.Bytes()).
		Order("product_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]*stock.StoreStock, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func toDomain(dto StoreStockDTO) (*stock.StoreStock, error) {
	storeID, err := kernel.UUIDFromGoogle(dto.StoreID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	return &stock.StoreStock{
		StoreID:      storeID,
		ProductID:    productID,
		CurrentLevel: dto.CurrentLevel,
		Threshold:    dto.Threshold,
		UpdatedAt:    dto.UpdatedAt,
	}, nil
}
