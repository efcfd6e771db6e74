package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, patch ports.OrderPatch) (*order.Order, error) {
	args := m.Called(ctx, patch)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Filter(ctx context.Context, status *order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FilterReceivedBefore(
	ctx context.Context,
	cutoff time.Time,
	statuses ...order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, statuses)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
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

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func lifecycle() services.OrderLifecycle {
	return services.NewOrderLifecycle(services.NewCarrierPricer())
}

func testItem(t *testing.T) order.Item {
	t.Helper()
	item, err := order.NewItem("S", decimal.NewFromInt(20), decimal.NewFromInt(100), 1)
	require.NoError(t, err)
	return item
}

func receivedOrder(t *testing.T, id string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustOrderID(id), "A", []order.Item{testItem(t)})
	require.NoError(t, err)
	return o
}

func quotedOrder(t *testing.T, id string, carriers ...carrier.Code) *order.Order {
	t.Helper()
	outcome, err := lifecycle().DeriveQuoteOutcome(receivedOrder(t, id), carriers)
	require.NoError(t, err)
	return outcome.(services.Succeeded).Order
}

func bookedOrder(t *testing.T, id string) *order.Order {
	t.Helper()
	booked, err := quotedOrder(t, id, carrier.UPS).Book(carrier.UPS)
	require.NoError(t, err)
	return booked
}

func newMocks() (*MockOrderUoWFactory, *MockOrderUoW, *MockOrderRepository) {
	factory := new(MockOrderUoWFactory)
	uow := new(MockOrderUoW)
	repo := new(MockOrderRepository)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}
