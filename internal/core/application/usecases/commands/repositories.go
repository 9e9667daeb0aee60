// Package commands contains the business operations that modify state.
// Every handler validates its command, opens one unit of work, applies the
// aggregate transitions, commits, and only then dispatches notifications.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of work views narrowed to what each group of handlers touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	KitchenSheetRepoFactory interface {
		KitchenSheetRepository() ports.KitchenSheetRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// OrderUoW serves order lifecycle commands. The catalog prices items.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReplenishmentUoW serves the forecaster and stock level updates.
	ReplenishmentUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
		CatalogRepoFactory
	}

	ReplenishmentUoWFactory interface {
		Create() ReplenishmentUoW
	}

	// KitchenUoW serves kitchen sheet commands, which also move the order.
	KitchenUoW interface {
		TxManager
		OrderRepoFactory
		KitchenSheetRepoFactory
		CatalogRepoFactory
	}

	KitchenUoWFactory interface {
		Create() KitchenUoW
	}

	// DeliveryUoW serves delivery commands. Accounts validate drivers and the
	// catalog supplies store addresses.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		CatalogRepoFactory
		AccountRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	InvoiceUoW interface {
		TxManager
		OrderRepoFactory
		InvoiceRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// ReturnUoW serves return commands. Processing a return adjusts the
	// invoice of the delivered order in the same transaction.
	ReturnUoW interface {
		TxManager
		DeliveryRepoFactory
		ReturnRepoFactory
		InvoiceRepoFactory
		CatalogRepoFactory
	}

	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	AccountUoW interface {
		TxManager
		AccountRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}
)

// UoWFactoryFunc adapts a function to any of the factories above, e.g.
//
//	var f OrderUoWFactory = UoWFactoryFunc[OrderUoW](func() OrderUoW {
//	    return gormFactory.Create()
//	})
type UoWFactoryFunc[T any] func() T

func (f UoWFactoryFunc[T]) Create() T {
	return f()
}
