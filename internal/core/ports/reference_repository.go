package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// CatalogRepository reads products and stores owned by other services.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetProducts returns the products keyed by ID. Any missing ID yields
	// errs.ErrObjectNotFound.
	GetProducts(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*catalog.Product, error)

	GetStore(ctx context.Context, id kernel.UUID) (*account.Store, error)

	ListActiveStores(ctx context.Context) ([]*account.Store, error)
}

// AccountRepository reads users and provisions well-known actors.
type AccountRepository interface {
	GetUser(ctx context.Context, id kernel.UUID) (*account.User, error)

	// EnsureUser inserts the user unless a user with the same ID exists.
	EnsureUser(ctx context.Context, user *account.User) error

	// FindUserIDs resolves a recipient selector.
	FindUserIDs(ctx context.Context, selector notification.RecipientSelector) ([]kernel.UUID, error)
}
