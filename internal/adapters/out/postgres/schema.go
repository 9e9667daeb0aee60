package postgres

import (
	"fulfillment/internal/adapters/out/postgres/accountrepo"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/kitchenrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"

	"gorm.io/gorm"
)

// Models lists every table of the fulfillment store in creation order.
func Models() []any {
	return []any{
		&catalogrepo.ProductDTO{},
		&catalogrepo.StoreDTO{},
		&accountrepo.UserDTO{},
		&stockrepo.StoreStockDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&kitchenrepo.SheetDTO{},
		&kitchenrepo.SheetItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.TemperatureLogDTO{},
		&returnrepo.ReturnDTO{},
		&returnrepo.ReturnItemDTO{},
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.PaymentDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
