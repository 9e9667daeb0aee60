package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testNow    = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	testExpiry = testNow.AddDate(0, 0, 5)
	testLabel  = kitchen.LabelContext{SKU: "SKU-001", OrderNumber: "ORD-20260310-0001"}
)

// lockWait is how long a blocked transaction is given to prove it waits.
const lockWait = 300 * time.Millisecond

// UnitOfWorkTestSuite checks transaction boundaries across repositories.
// It runs against SQLite always and against a PostgreSQL container unless
// -short is given.
type UnitOfWorkTestSuite struct {
	suite.Suite
	open func(ctx context.Context) *gorm.DB
	// concurrent is false for the single connection SQLite database.
	concurrent bool

	db      *gorm.DB
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupSuite() {
	suite.db = suite.open(context.Background())
	suite.Require().NoError(postgres_adapter.Migrate(suite.db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	for _, model := range postgres_adapter.Models() {
		err := suite.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkTestSuite) TestFactoryCreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.InvoiceRepository())
	suite.NotNil(uow2.StockRepository())
	suite.NotNil(uow2.AccountRepository())
}

func (suite *UnitOfWorkTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "a second Begin joins the open transaction")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkTestSuite) TestCommitAndRollbackWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkTestSuite) TestRollbackAfterCommitIsHarmless() {
	ctx := context.Background()
	o := newOrder(suite, "ORD-20260310-0001")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkTestSuite) TestMultiRepositoryCommit() {
	ctx := context.Background()
	o := newOrder(suite, "ORD-20260310-0001")
	inv := newInvoice(suite, o.ID())
	level := newStock(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.InvoiceRepository().Add(ctx, inv))
	suite.Require().NoError(uow.StockRepository().Save(ctx, level))

	tracked, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Equal(2, tracked.TrackedCount())

	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(0, tracked.TrackedCount())

	fresh := suite.factory.Create()
	loaded, err := fresh.InvoiceRepository().GetByOrderID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(inv.ID(), loaded.ID())

	saved, err := fresh.StockRepository().Get(ctx, level.StoreID, level.ProductID)
	suite.Require().NoError(err)
	suite.Equal(3, saved.CurrentLevel)
}

func (suite *UnitOfWorkTestSuite) TestRollbackDiscardsEveryRepository() {
	ctx := context.Background()
	o := newOrder(suite, "ORD-20260310-0001")
	inv := newInvoice(suite, o.ID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.InvoiceRepository().Add(ctx, inv))

	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "the transaction sees its own writes")

	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = fresh.InvoiceRepository().Get(ctx, inv.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkTestSuite) TestDuplicateNumberIsAlreadyExists() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	suite.Require().NoError(repo.Add(ctx, newOrder(suite, "ORD-20260310-0001")))

	err := repo.Add(ctx, newOrder(suite, "ORD-20260310-0001"))
	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *UnitOfWorkTestSuite) TestTransactionsAreIsolated() {
	if !suite.concurrent {
		suite.T().Skip("needs more than one connection")
	}
	ctx := context.Background()
	order1 := newOrder(suite, "ORD-20260310-0001")
	order2 := newOrder(suite, "ORD-20260310-0002")

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "uow1 must not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "uow2 must not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = fresh.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkTestSuite) TestSheetLockSerializesSiblingPacks() {
	if !suite.concurrent {
		suite.T().Skip("needs more than one connection")
	}
	ctx := context.Background()
	sheet := newSheet(suite, 2)
	suite.Require().NoError(suite.factory.Create().KitchenSheetRepository().Add(ctx, sheet))
	items := sheet.Items()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	defer func() { _ = first.Rollback(ctx) }()

	locked, err := first.KitchenSheetRepository().GetForUpdate(ctx, sheet.ID())
	suite.Require().NoError(err)
	_, err = locked.MarkItemPacked(items[0].ID(), "B-1", testExpiry, testLabel, nil, testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(first.KitchenSheetRepository().Update(ctx, locked))

	done := make(chan packOutcome, 1)
	go func() {
		done <- packItem(ctx, suite.factory, sheet.ID(), items[1].ID())
	}()

	select {
	case <-done:
		suite.FailNow("second pack read the sheet while it was locked")
	case <-time.After(lockWait):
	}

	suite.Require().NoError(first.Commit(ctx))
	outcome := <-done
	suite.Require().NoError(outcome.err)
	suite.True(outcome.completed)

	stored, err := suite.factory.Create().KitchenSheetRepository().Get(ctx, sheet.ID())
	suite.Require().NoError(err)
	suite.Equal(kitchen.StatusCompleted, stored.Status())
	suite.Equal(2, stored.PackedCount())
}

func (suite *UnitOfWorkTestSuite) TestOrderLockSerializesTransitions() {
	if !suite.concurrent {
		suite.T().Skip("needs more than one connection")
	}
	ctx := context.Background()
	o := newOrder(suite, "ORD-20260310-0001")
	suite.Require().NoError(o.Submit(testNow))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	defer func() { _ = first.Rollback(ctx) }()

	locked, err := first.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Approve(kernel.NewUUID(), testNow))
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))

	seen := make(chan statusOutcome, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			seen <- statusOutcome{err: err}
			return
		}
		defer func() { _ = second.Rollback(ctx) }()

		got, err := second.OrderRepository().GetForUpdate(ctx, o.ID())
		if err != nil {
			seen <- statusOutcome{err: err}
			return
		}
		seen <- statusOutcome{status: got.Status()}
	}()

	select {
	case <-seen:
		suite.FailNow("second transition read the order while it was locked")
	case <-time.After(lockWait):
	}

	suite.Require().NoError(first.Commit(ctx))
	outcome := <-seen
	suite.Require().NoError(outcome.err)
	suite.Equal(order.StatusApproved, outcome.status, "the waiting transaction sees the committed approval")
}

type packOutcome struct {
	completed bool
	err       error
}

type statusOutcome struct {
	status order.Status
	err    error
}

func packItem(ctx context.Context, factory ports.UnitOfWorkFactory, sheetID, itemID kernel.UUID) packOutcome {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return packOutcome{err: err}
	}
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.KitchenSheetRepository()
	sheet, err := repo.GetForUpdate(ctx, sheetID)
	if err != nil {
		return packOutcome{err: err}
	}
	result, err := sheet.MarkItemPacked(itemID, "B-2", testExpiry, testLabel, nil, testNow)
	if err != nil {
		return packOutcome{err: err}
	}
	if err = repo.Update(ctx, sheet); err != nil {
		return packOutcome{err: err}
	}
	if err = uow.Commit(ctx); err != nil {
		return packOutcome{err: err}
	}
	return packOutcome{completed: result.Completed}
}

func newSheet(suite *UnitOfWorkTestSuite, items int) *kitchen.Sheet {
	sheetItems := make([]*kitchen.Item, 0, items)
	for range items {
		item, err := kitchen.NewItem(kernel.NewUUID(), kernel.NewUUID(), 3)
		suite.Require().NoError(err)
		sheetItems = append(sheetItems, item)
	}

	sheet, err := kitchen.NewSheet(kernel.NewUUID(), kernel.NewUUID(), sheetItems, testNow)
	suite.Require().NoError(err)
	return sheet
}

func newOrder(suite *UnitOfWorkTestSuite, number string) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, decimal.RequireFromString("5.00"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(),
		order.TypeManual, []*order.Item{item}, "", testNow)
	suite.Require().NoError(err)
	return o
}

func newInvoice(suite *UnitOfWorkTestSuite, orderID kernel.UUID) *invoice.Invoice {
	inv, err := invoice.NewInvoice(kernel.NewUUID(), "INV-20260310-0001", orderID,
		decimal.RequireFromString("10.00"), invoice.Terms{}, testNow)
	suite.Require().NoError(err)
	return inv
}

func newStock(suite *UnitOfWorkTestSuite) *stock.StoreStock {
	level, err := stock.NewStoreStock(kernel.NewUUID(), kernel.NewUUID(), 3, 5, testNow)
	suite.Require().NoError(err)
	return level
}

func TestUnitOfWorkSQLite(t *testing.T) {
	suite.Run(t, &UnitOfWorkTestSuite{
		open: func(context.Context) *gorm.DB {
			db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
				TranslateError: true,
				Logger:         gormlogger.Discard,
			})
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				t.Fatalf("sqlite pool: %v", err)
			}
			sqlDB.SetMaxOpenConns(1)
			return db
		},
	})
}

func TestUnitOfWorkPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a PostgreSQL container")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	suite.Run(t, &UnitOfWorkTestSuite{
		concurrent: true,
		open: func(ctx context.Context) *gorm.DB {
			dsn, err := container.ConnectionString(ctx, "sslmode=disable")
			if err != nil {
				t.Fatalf("postgres dsn: %v", err)
			}
			db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
				TranslateError: true,
				Logger:         gormlogger.Discard,
			})
			if err != nil {
				t.Fatalf("open postgres: %v", err)
			}
			return db
		},
	})
}
