package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/accountrepo"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() ports.Clock {
	return ports.ClockFunc(func() time.Time { return testNow })
}

type recordingNotifier struct {
	mu       sync.Mutex
	triggers []notification.Trigger
}

func (n *recordingNotifier) Notify(_ context.Context, trigger notification.Trigger) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.triggers = append(n.triggers, trigger)
}

func (n *recordingNotifier) ByKind(kind notification.Kind) []notification.Trigger {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification.Trigger
	for _, t := range n.triggers {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// testEnv runs handlers against an in-memory SQLite database migrated with
// the production schema.
type testEnv struct {
	t        *testing.T
	ctx      context.Context
	db       *gorm.DB
	factory  *postgres.GormUnitOfWorkFactory
	notifier *recordingNotifier
	now      time.Time
	clock    ports.Clock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormLogger(zaptest.NewLogger(t), gormlogger.Warn),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: opens a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))

	env := &testEnv{
		t:        t,
		ctx:      t.Context(),
		db:       db,
		factory:  postgres.NewGormUnitOfWorkFactory(db),
		notifier: &recordingNotifier{},
		now:      testNow,
	}
	env.clock = ports.ClockFunc(func() time.Time { return env.now })
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func (e *testEnv) orderUoW() commands.OrderUoWFactory {
	return commands.UoWFactoryFunc[commands.OrderUoW](func() commands.OrderUoW { return e.factory.Create() })
}

func (e *testEnv) replenishmentUoW() commands.ReplenishmentUoWFactory {
	return commands.UoWFactoryFunc[commands.ReplenishmentUoW](func() commands.ReplenishmentUoW { return e.factory.Create() })
}

func (e *testEnv) kitchenUoW() commands.KitchenUoWFactory {
	return commands.UoWFactoryFunc[commands.KitchenUoW](func() commands.KitchenUoW { return e.factory.Create() })
}

func (e *testEnv) deliveryUoW() commands.DeliveryUoWFactory {
	return commands.UoWFactoryFunc[commands.DeliveryUoW](func() commands.DeliveryUoW { return e.factory.Create() })
}

func (e *testEnv) invoiceUoW() commands.InvoiceUoWFactory {
	return commands.UoWFactoryFunc[commands.InvoiceUoW](func() commands.InvoiceUoW { return e.factory.Create() })
}

func (e *testEnv) returnUoW() commands.ReturnUoWFactory {
	return commands.UoWFactoryFunc[commands.ReturnUoW](func() commands.ReturnUoW { return e.factory.Create() })
}

func (e *testEnv) accountUoW() commands.AccountUoWFactory {
	return commands.UoWFactoryFunc[commands.AccountUoW](func() commands.AccountUoW { return e.factory.Create() })
}

func (e *testEnv) seedStore() kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	require.NoError(e.t, e.db.Create(&catalogrepo.StoreDTO{
		ID:         id.Bytes(),
		Name:       "Store " + id.String()[:8],
		Address:    "1 Market St",
		City:       "Springfield",
		PostalCode: "12345",
		IsActive:   true,
	}).Error)
	return id
}

func (e *testEnv) seedProduct(sku, price string, shelfLifeDays *int) kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	require.NoError(e.t, e.db.Create(&catalogrepo.ProductDTO{
		ID:            id.Bytes(),
		SKU:           sku,
		Name:          "Product " + sku,
		Price:         decimal.RequireFromString(price),
		ShelfLifeDays: shelfLifeDays,
		IsActive:      true,
	}).Error)
	return id
}

func (e *testEnv) seedUser(role account.Role, storeID *kernel.UUID) kernel.UUID {
	e.t.Helper()
	id := kernel.NewUUID()
	require.NoError(e.t, e.db.Create(&accountrepo.UserDTO{
		ID:      id.Bytes(),
		Name:    role.String() + " user",
		Email:   id.String() + "@example.com",
		Role:    role.String(),
		StoreID: kernel.OptionalBytes(storeID),
	}).Error)
	return id
}

func (e *testEnv) seedStock(storeID, productID kernel.UUID, level, threshold int) {
	e.t.Helper()
	require.NoError(e.t, e.db.Create(&stockrepo.StoreStockDTO{
		StoreID:      storeID.Bytes(),
		ProductID:    productID.Bytes(),
		CurrentLevel: level,
		Threshold:    threshold,
		UpdatedAt:    e.now,
	}).Error)
}

func (e *testEnv) createOrder(storeID kernel.UUID, lines ...commands.OrderLine) *order.Order {
	e.t.Helper()
	cmd, err := commands.NewCreateOrderCommand(storeID, kernel.NewUUID(), order.TypeManual, lines, "")
	require.NoError(e.t, err)
	o, err := commands.NewCreateOrderCommandHandler(e.orderUoW(), e.clock).Handle(e.ctx, cmd)
	require.NoError(e.t, err)
	return o
}

func (e *testEnv) approveOrder(orderID kernel.UUID) *order.Order {
	e.t.Helper()
	submit, err := commands.NewSubmitOrderCommand(orderID)
	require.NoError(e.t, err)
	_, err = commands.NewSubmitOrderCommandHandler(e.orderUoW(), e.clock).Handle(e.ctx, submit)
	require.NoError(e.t, err)

	approve, err := commands.NewApproveOrderCommand(orderID, kernel.NewUUID())
	require.NoError(e.t, err)
	o, err := commands.NewApproveOrderCommandHandler(e.orderUoW(), e.notifier, e.clock).Handle(e.ctx, approve)
	require.NoError(e.t, err)
	return o
}

func (e *testEnv) generateSheet(orderID kernel.UUID) *kitchen.Sheet {
	e.t.Helper()
	cmd, err := commands.NewGenerateKitchenSheetCommand(orderID)
	require.NoError(e.t, err)
	sheet, err := commands.NewGenerateKitchenSheetCommandHandler(e.kitchenUoW(), e.clock).Handle(e.ctx, cmd)
	require.NoError(e.t, err)
	return sheet
}

func (e *testEnv) packItem(sheetID, itemID kernel.UUID) (*kitchen.Sheet, error) {
	e.t.Helper()
	cmd, err := commands.NewMarkItemPackedCommand(sheetID, itemID, "B-001", e.now.AddDate(0, 0, 5), nil)
	require.NoError(e.t, err)
	return commands.NewMarkItemPackedCommandHandler(e.kitchenUoW(), e.clock).Handle(e.ctx, cmd)
}

// readyOrder creates an order and takes it through approval and packing.
func (e *testEnv) readyOrder(storeID kernel.UUID, lines ...commands.OrderLine) *order.Order {
	e.t.Helper()
	o := e.createOrder(storeID, lines...)
	e.approveOrder(o.ID())
	sheet := e.generateSheet(o.ID())
	for _, item := range sheet.Items() {
		_, err := e.packItem(sheet.ID(), item.ID())
		require.NoError(e.t, err)
	}
	return o
}

func (e *testEnv) dispatch(orderID kernel.UUID) (*delivery.Delivery, kernel.UUID) {
	e.t.Helper()
	note, err := commands.NewGenerateDeliveryNoteCommand(orderID, nil, "")
	require.NoError(e.t, err)
	d, err := commands.NewGenerateDeliveryNoteCommandHandler(e.deliveryUoW(), e.clock).Handle(e.ctx, note)
	require.NoError(e.t, err)

	driverID := e.seedUser(account.RoleDriver, nil)
	assign, err := commands.NewAssignDriverCommand(d.ID(), driverID)
	require.NoError(e.t, err)
	_, err = commands.NewAssignDriverCommandHandler(e.deliveryUoW(), e.notifier, e.clock).Handle(e.ctx, assign)
	require.NoError(e.t, err)

	start, err := commands.NewStartDeliveryCommand(d.ID(), driverID)
	require.NoError(e.t, err)
	d, err = commands.NewStartDeliveryCommandHandler(e.deliveryUoW(), e.clock).Handle(e.ctx, start)
	require.NoError(e.t, err)
	return d, driverID
}

// deliveredOrder runs the whole fulfillment path up to DELIVERED.
func (e *testEnv) deliveredOrder(storeID kernel.UUID, lines ...commands.OrderLine) (*order.Order, *delivery.Delivery) {
	e.t.Helper()
	o := e.readyOrder(storeID, lines...)
	d, driverID := e.dispatch(o.ID())

	complete, err := commands.NewCompleteDeliveryCommand(d.ID(), driverID, delivery.Proof{Signature: "signed"})
	require.NoError(e.t, err)
	d, err = commands.NewCompleteDeliveryCommandHandler(e.deliveryUoW(), e.clock).Handle(e.ctx, complete)
	require.NoError(e.t, err)
	return o, d
}

func (e *testEnv) getOrder(id kernel.UUID) *order.Order {
	e.t.Helper()
	o, err := e.factory.Create().OrderRepository().Get(e.ctx, id)
	require.NoError(e.t, err)
	return o
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
