// Package accountrepo reads users and provisions the well-known actors the
// core needs at startup.
package accountrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/dberrs"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDTO struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name    string     `gorm:"size:255;not null"`
	Email   string     `gorm:"size:255;not null;uniqueIndex"`
	Role    string     `gorm:"size:20;not null;index"`
	StoreID *uuid.UUID `gorm:"type:uuid;index"`
}

func (UserDTO) TableName() string {
	return "users"
}

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) GetUser(ctx context.Context, id kernel.UUID) (*account.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead("user", id, err)
	}
	return toDomain(dto)
}

// EnsureUser inserts the user and ignores a conflict on the primary key.
func (r *GormAccountRepository) EnsureUser(ctx context.Context, user *account.User) error {
	if err := user.ID.Validate(); err != nil {
		return err
	}

	dto := UserDTO{
		ID:      user.ID.Bytes(),
		Name:    user.Name,
		Email:   user.Email,
		Role:    string(user.Role),
		StoreID: kernel.OptionalBytes(user.StoreID),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&dto).Error
}

func (r *GormAccountRepository) FindUserIDs(ctx context.Context, selector notification.RecipientSelector) ([]kernel.UUID, error) {
	if selector.UserID != nil {
		return []kernel.UUID{*selector.UserID}, nil
	}
	if len(selector.Roles) == 0 {
		return nil, nil
	}

	roles := make([]string, 0, len(selector.Roles))
	for _, role := range selector.Roles {
		roles = append(roles, string(role))
	}

	query := r.db.WithContext(ctx).Model(&UserDTO{}).Where("role IN ?", roles)
	if selector.StoreID != nil {
		query = query.Where("(store_id = ? OR store_id IS NULL)", selector.StoreID.Bytes())
	}

	var raw []uuid.UUID
	if err := query.Order("id").Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		u, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, u)
	}
	return ids, nil
}

func toDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.OptionalUUIDFromGoogle(dto.StoreID)
	if err != nil {
		return nil, err
	}
	return &account.User{
		ID:      id,
		Name:    dto.Name,
		Email:   dto.Email,
		Role:    account.Role(dto.Role),
		StoreID: storeID,
	}, nil
}
