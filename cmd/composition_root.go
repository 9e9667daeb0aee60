package cmd

import (
	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler on top of one GORM connection pool.
type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	notifier      ports.Notifier
	clock         ports.Clock
	systemActorID kernel.UUID
}

// NewCompositionRoot wires the notifier channels enabled in cfg. redisClient
// may be nil when the redis channel is disabled.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient redis.UniversalClient, logger *zap.Logger) (CompositionRoot, error) {
	systemActorID, err := cfg.SystemActor()
	if err != nil {
		return CompositionRoot{}, err
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var channels []notifier.Channel
	if cfg.HasChannel("log") {
		channels = append(channels, notifier.NewLogChannel(logger))
	}
	if cfg.HasChannel("redis") && redisClient != nil {
		channels = append(channels, notifier.NewRedisChannel(redisClient, cfg.RedisChannel))
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    uowFactory,
		notifier:      notifier.NewDispatcher(notifier.NewUnitOfWorkResolver(uowFactory), ports.SystemClock, logger, channels...),
		clock:         ports.SystemClock,
		systemActorID: systemActorID,
	}, nil
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return commands.UoWFactoryFunc[commands.OrderUoW](func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) replenishmentUoW() commands.ReplenishmentUoWFactory {
	return commands.UoWFactoryFunc[commands.ReplenishmentUoW](func() commands.ReplenishmentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) kitchenUoW() commands.KitchenUoWFactory {
	return commands.UoWFactoryFunc[commands.KitchenUoW](func() commands.KitchenUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) deliveryUoW() commands.DeliveryUoWFactory {
	return commands.UoWFactoryFunc[commands.DeliveryUoW](func() commands.DeliveryUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) invoiceUoW() commands.InvoiceUoWFactory {
	return commands.UoWFactoryFunc[commands.InvoiceUoW](func() commands.InvoiceUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) returnUoW() commands.ReturnUoWFactory {
	return commands.UoWFactoryFunc[commands.ReturnUoW](func() commands.ReturnUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) accountUoW() commands.AccountUoWFactory {
	return commands.UoWFactoryFunc[commands.AccountUoW](func() commands.AccountUoW { return c.uowFactory.Create() })
}

// Order lifecycle

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderItemsCommandHandler() *commands.UpdateOrderItemsCommandHandler {
	return commands.NewUpdateOrderItemsCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() *commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() *commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.orderUoW(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() *commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoW(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoW(), c.clock)
}

// Replenishment

func (c *CompositionRoot) CreateCheckAndGenerateDraftOrdersCommandHandler() *commands.CheckAndGenerateDraftOrdersCommandHandler {
	return commands.NewCheckAndGenerateDraftOrdersCommandHandler(
		c.replenishmentUoW(),
		c.CreateCreateOrderCommandHandler(),
		c.systemActorID,
		c.clock,
	)
}

func (c *CompositionRoot) CreateUpdateStockLevelCommandHandler() *commands.UpdateStockLevelCommandHandler {
	return commands.NewUpdateStockLevelCommandHandler(c.replenishmentUoW(), c.notifier, c.clock)
}

// Kitchen

func (c *CompositionRoot) CreateGenerateKitchenSheetCommandHandler() *commands.GenerateKitchenSheetCommandHandler {
	return commands.NewGenerateKitchenSheetCommandHandler(c.kitchenUoW(), c.clock)
}

func (c *CompositionRoot) CreateMarkItemPackedCommandHandler() *commands.MarkItemPackedCommandHandler {
	return commands.NewMarkItemPackedCommandHandler(c.kitchenUoW(), c.clock)
}

func (c *CompositionRoot) CreateUpdateKitchenSheetItemCommandHandler() *commands.UpdateKitchenSheetItemCommandHandler {
	return commands.NewUpdateKitchenSheetItemCommandHandler(c.kitchenUoW(), c.clock)
}

// Delivery

func (c *CompositionRoot) CreateGenerateDeliveryNoteCommandHandler() *commands.GenerateDeliveryNoteCommandHandler {
	return commands.NewGenerateDeliveryNoteCommandHandler(c.deliveryUoW(), c.clock)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() *commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.deliveryUoW(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() *commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.deliveryUoW(), c.clock)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() *commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.deliveryUoW(), c.clock)
}

func (c *CompositionRoot) CreateFailDeliveryCommandHandler() *commands.FailDeliveryCommandHandler {
	return commands.NewFailDeliveryCommandHandler(c.deliveryUoW(), c.clock)
}

func (c *CompositionRoot) CreateLogTemperatureCommandHandler() *commands.LogTemperatureCommandHandler {
	return commands.NewLogTemperatureCommandHandler(c.deliveryUoW(), c.notifier, c.clock)
}

// Invoicing

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() *commands.GenerateInvoiceCommandHandler {
	return commands.NewGenerateInvoiceCommandHandler(c.invoiceUoW(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() *commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.invoiceUoW(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateUpdateInvoiceCommandHandler() *commands.UpdateInvoiceCommandHandler {
	return commands.NewUpdateInvoiceCommandHandler(c.invoiceUoW(), c.clock)
}

func (c *CompositionRoot) CreateRefreshOverdueInvoicesCommandHandler() *commands.RefreshOverdueInvoicesCommandHandler {
	return commands.NewRefreshOverdueInvoicesCommandHandler(c.invoiceUoW(), c.clock)
}

// Returns

func (c *CompositionRoot) CreateCreateReturnCommandHandler() *commands.CreateReturnCommandHandler {
	return commands.NewCreateReturnCommandHandler(c.returnUoW(), c.clock)
}

func (c *CompositionRoot) CreateProcessReturnCommandHandler() *commands.ProcessReturnCommandHandler {
	return commands.NewProcessReturnCommandHandler(c.returnUoW(), c.clock)
}

func (c *CompositionRoot) CreateRejectReturnCommandHandler() *commands.RejectReturnCommandHandler {
	return commands.NewRejectReturnCommandHandler(c.returnUoW(), c.clock)
}

// Accounts

func (c *CompositionRoot) CreateEnsureSystemActorCommandHandler() *commands.EnsureSystemActorCommandHandler {
	return commands.NewEnsureSystemActorCommandHandler(c.accountUoW())
}

// Read models

func (c *CompositionRoot) CreateGetOrderFulfillmentQueryHandler() queries.GetOrderFulfillmentQueryHandler {
	return queries.NewGetOrderFulfillmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTemperatureLogsQueryHandler() queries.ListTemperatureLogsQueryHandler {
	return queries.NewListTemperatureLogsQueryHandler(c.gormDB)
}
