package queries_test

import (
	"context"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/kitchenrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

// readModelSuite runs the read-side queries against a fresh in-memory
// schema per test. Rows are inserted directly so each test states exactly
// which stages exist.
type readModelSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB
}

func (s *readModelSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormLogger(zaptest.NewLogger(s.T()), gormlogger.Warn),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { _ = sqlDB.Close() })

	s.Require().NoError(postgres.Migrate(db))
	s.db = db
}

func (s *readModelSuite) insert(rows ...any) {
	for _, row := range rows {
		s.Require().NoError(s.db.Create(row).Error)
	}
}

func (s *readModelSuite) seedOrder(number, status, total string) *orderrepo.OrderDTO {
	o := &orderrepo.OrderDTO{
		ID:          uuid.New(),
		OrderNumber: number,
		StoreID:     uuid.New(),
		OrderType:   "MANUAL",
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
		CreatedByID: uuid.New(),
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	s.insert(o)
	return o
}

func (s *readModelSuite) seedSheet(orderID uuid.UUID, status string) *kitchenrepo.SheetDTO {
	sheet := &kitchenrepo.SheetDTO{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    status,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	s.insert(sheet)
	return sheet
}

func (s *readModelSuite) seedDelivery(orderID uuid.UUID, status string, driverID *uuid.UUID) *deliveryrepo.DeliveryDTO {
	d := &deliveryrepo.DeliveryDTO{
		ID:              uuid.New(),
		OrderID:         orderID,
		Status:          status,
		DriverID:        driverID,
		ScheduledDate:   testNow,
		DeliveryAddress: "1 Market St, Springfield 12345",
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}
	s.insert(d)
	return d
}

func (s *readModelSuite) seedInvoice(orderID uuid.UUID, number, status, total string) *invoicerepo.InvoiceDTO {
	amount := decimal.RequireFromString(total)
	inv := &invoicerepo.InvoiceDTO{
		ID:               uuid.New(),
		InvoiceNumber:    number,
		OrderID:          orderID,
		Subtotal:         amount,
		Discount:         decimal.Zero,
		Tax:              decimal.Zero,
		ReturnAdjustment: decimal.Zero,
		TotalAmount:      amount,
		DueDate:          testNow.AddDate(0, 0, 30),
		Status:           status,
		CreatedAt:        testNow,
		UpdatedAt:        testNow,
	}
	s.insert(inv)
	return inv
}

func (s *readModelSuite) seedPayment(invoiceID uuid.UUID, amount string) {
	s.insert(&invoicerepo.PaymentDTO{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Amount:      decimal.RequireFromString(amount),
		Method:      "CASH",
		PaymentDate: testNow,
	})
}

func (s *readModelSuite) id(u uuid.UUID) kernel.UUID {
	id, err := kernel.UUIDFromGoogle(u)
	s.Require().NoError(err)
	return id
}
