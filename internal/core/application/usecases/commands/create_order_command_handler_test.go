package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errNotMocked = errors.New("not implemented in mock")

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Update(_ context.Context, _ *order.Order) error       { return errNotMocked }
func (m *MockOrderRepository) ReplaceItems(_ context.Context, _ *order.Order) error { return errNotMocked }
func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errNotMocked
}
func (m *MockOrderRepository) FindDraftAutoReplenish(_ context.Context, _ kernel.UUID, _ string) (*order.Order, error) {
	return nil, errNotMocked
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) GetStore(ctx context.Context, id kernel.UUID) (*account.Store, error) {
	args := m.Called(ctx, id)
	store, _ := args.Get(0).(*account.Store)
	return store, args.Error(1)
}

func (m *MockCatalogRepository) GetProduct(_ context.Context, _ kernel.UUID) (*catalog.Product, error) {
	return nil, errNotMocked
}
func (m *MockCatalogRepository) GetProducts(_ context.Context, _ []kernel.UUID) (map[kernel.UUID]*catalog.Product, error) {
	return nil, errNotMocked
}
func (m *MockCatalogRepository) ListActiveStores(_ context.Context) ([]*account.Store, error) {
	return nil, errNotMocked
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type createOrderMocks struct {
	factory *MockOrderUoWFactory
	uow     *MockOrderUoW
	orders  *MockOrderRepository
	catalog *MockCatalogRepository
}

func newCreateOrderMocks(storeID kernel.UUID) createOrderMocks {
	m := createOrderMocks{
		factory: new(MockOrderUoWFactory),
		uow:     new(MockOrderUoW),
		orders:  new(MockOrderRepository),
		catalog: new(MockCatalogRepository),
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Rollback", mock.Anything).Return(nil)
	m.uow.On("OrderRepository").Return(m.orders)
	m.uow.On("CatalogRepository").Return(m.catalog)
	m.catalog.On("GetStore", mock.Anything, storeID).Return(&account.Store{ID: storeID, IsActive: true}, nil)
	m.orders.On("CountByNumberPrefix", mock.Anything, "ORD-20260310-").Return(int64(41), nil)
	return m
}

func newCreateOrderCommand(t *testing.T, storeID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(storeID, kernel.NewUUID(), order.TypeManual, nil, "")
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	m := newCreateOrderMocks(storeID)
	m.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	m.uow.On("Commit", mock.Anything).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(m.factory, fixedClock())
	created, err := h.Handle(ctx, newCreateOrderCommand(t, storeID))
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260310-0042", created.Number())
	m.orders.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RetriesTakenNumber(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	m := newCreateOrderMocks(storeID)
	m.orders.On("Add", mock.Anything, mock.Anything).Return(errs.NewAlreadyExistsError("order", nil)).Once()
	m.orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	m.uow.On("Commit", mock.Anything).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(m.factory, fixedClock())
	_, err := h.Handle(ctx, newCreateOrderCommand(t, storeID))
	require.NoError(t, err)
	m.factory.AssertNumberOfCalls(t, "Create", 2)
	m.orders.AssertNumberOfCalls(t, "Add", 2)
}

func TestCreateOrderCommandHandler_Handle_GivesUpAfterRetries(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	m := newCreateOrderMocks(storeID)
	m.orders.On("Add", mock.Anything, mock.Anything).Return(errs.NewAlreadyExistsError("order", nil))

	h := commands.NewCreateOrderCommandHandler(m.factory, fixedClock())
	_, err := h.Handle(ctx, newCreateOrderCommand(t, storeID))
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	m.orders.AssertNumberOfCalls(t, "Add", 3)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, fixedClock())
	_, err := h.Handle(ctx, newCreateOrderCommand(t, storeID))
	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	m := newCreateOrderMocks(storeID)
	m.orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	m.uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once()

	h := commands.NewCreateOrderCommandHandler(m.factory, fixedClock())
	_, err := h.Handle(ctx, newCreateOrderCommand(t, storeID))
	require.EqualError(t, err, "commit error")
	m.uow.AssertCalled(t, "Rollback", mock.Anything)
}
