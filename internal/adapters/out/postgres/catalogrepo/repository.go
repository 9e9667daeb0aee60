// Package catalogrepo reads the products and stores tables. Both are owned
// by the catalog service; the core never writes them.
package catalogrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/dberrs"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SKU           string          `gorm:"column:sku;size:64;not null;uniqueIndex"`
	Name          string          `gorm:"size:255;not null"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ShelfLifeDays *int
	IsActive      bool `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

type StoreDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"size:255;not null"`
	Address    string    `gorm:"type:text"`
	City       string    `gorm:"size:128"`
	PostalCode string    `gorm:"size:16"`
	IsActive   bool      `gorm:"not null"`
}

func (StoreDTO) TableName() string {
	return "stores"
}

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead("product", id, err)
	}
	return productToDomain(dto)
}

func (r *GormCatalogRepository) GetProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*catalog.Product, error) {
	products := make(map[kernel.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}
	for _, dto := range dtos {
		p, err := productToDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}

	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
	}
	return products, nil
}

func (r *GormCatalogRepository) GetStore(ctx context.Context, id kernel.UUID) (*account.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead("store", id, err)
	}
	return storeToDomain(dto)
}

func (r *GormCatalogRepository) ListActiveStores(ctx context.Context) ([]*account.Store, error) {
	var dtos []StoreDTO
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	stores := make([]*account.Store, 0, len(dtos))
	for _, dto := range dtos {
		s, err := storeToDomain(dto)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, nil
}

func productToDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return &catalog.Product{
		ID:            id,
		SKU:           dto.SKU,
		Name:          dto.Name,
		Price:         dto.Price,
		ShelfLifeDays: dto.ShelfLifeDays,
		IsActive:      dto.IsActive,
	}, nil
}

func storeToDomain(dto StoreDTO) (*account.Store, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return &account.Store{
		ID:         id,
		Name:       dto.Name,
		Address:    dto.Address,
		City:       dto.City,
		PostalCode: dto.PostalCode,
		IsActive:   dto.IsActive,
	}, nil
}
