package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/medicine"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStaleOrderRepository struct{ mock.Mock }

func (m *MockStaleOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}
func (m *MockStaleOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockStaleOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockStaleOrderRepository) GetAllPlacedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStaleMedicineRepository struct{ mock.Mock }

func (m *MockStaleMedicineRepository) Add(_ context.Context, _ *medicine.Medicine) error {
	return errors.New("not implemented in mock")
}
func (m *MockStaleMedicineRepository) Update(_ context.Context, _ *medicine.Medicine) error {
	return errors.New("not implemented in mock")
}
func (m *MockStaleMedicineRepository) Get(_ context.Context, _ kernel.UUID) (*medicine.Medicine, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockStaleMedicineRepository) GetAllByIDs(_ context.Context, _ []kernel.UUID) ([]*medicine.Medicine, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockStaleMedicineRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}
func (m *MockStaleMedicineRepository) Release(ctx context.Context, id kernel.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockStaleUoW struct{ mock.Mock }

func (m *MockStaleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStaleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStaleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStaleUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockStaleUoW) MedicineRepository() ports.MedicineRepository {
	args := m.Called()
	return args.Get(0).(ports.MedicineRepository)
}

type MockStaleUoWFactory struct{ mock.Mock }

func (m *MockStaleUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func newStaleTestOrder(t *testing.T, medicineID kernel.UUID, quantity int) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(decimal.RequireFromString("14.20"))
	require.NoError(t, err)
	item, err := order.NewItem(medicineID, quantity, price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, []order.Item{item})
	require.NoError(t, err)
	return o
}

func newCancelledTestOrder(t *testing.T, medicineID kernel.UUID, quantity int) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(decimal.RequireFromString("14.20"))
	require.NoError(t, err)
	item, err := order.NewItem(medicineID, quantity, price)
	require.NoError(t, err)
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		[]order.Item{item}, order.Cancelled, "", now.Add(-48*time.Hour), now, 2,
	)
	require.NoError(t, err)
	return o
}

func TestCancelStaleOrdersCommandHandler_Handle_CancelsAllStaleOrders(t *testing.T) {
	ctx := context.Background()

	medicineID1 := kernel.NewUUID()
	medicineID2 := kernel.NewUUID()
	stale1 := newStaleTestOrder(t, medicineID1, 3)
	stale2 := newStaleTestOrder(t, medicineID2, 1)

	orderRepo := new(MockStaleOrderRepository)
	medicineRepo := new(MockStaleMedicineRepository)
	uow := new(MockStaleUoW)
	factory := new(MockStaleUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("MedicineRepository").Return(medicineRepo)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("GetAllPlacedBefore", ctx, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{stale1, stale2}, nil).Once()
	orderRepo.On("Get", ctx, stale1.ID()).Return(stale1, nil).Once()
	orderRepo.On("Get", ctx, stale2.ID()).Return(stale2, nil).Once()
	orderRepo.On("Update", ctx, stale1).Return(nil).Once()
	orderRepo.On("Update", ctx, stale2).Return(nil).Once()
	medicineRepo.On("Release", ctx, medicineID1, 3).Return(nil).Once()
	medicineRepo.On("Release", ctx, medicineID2, 1).Return(nil).Once()

	handler := commands.NewCancelStaleOrdersCommandHandler(factory)
	cmd, err := commands.NewCancelStaleOrdersCommand(24 * time.Hour)
	require.NoError(t, err)

	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)
	assert.Equal(t, order.Cancelled, stale1.Status())
	assert.Equal(t, order.Cancelled, stale2.Status())
	orderRepo.AssertExpectations(t)
	medicineRepo.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_NoStaleOrders(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockStaleOrderRepository)
	uow := new(MockStaleUoW)
	factory := new(MockStaleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetAllPlacedBefore", ctx, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{}, nil).Once()

	handler := commands.NewCancelStaleOrdersCommandHandler(factory)
	cmd, err := commands.NewCancelStaleOrdersCommand(time.Hour)
	require.NoError(t, err)

	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, cancelled)
	factory.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_SkipsAlreadyCancelledOrder(t *testing.T) {
	ctx := context.Background()

	medicineID := kernel.NewUUID()
	stale := newStaleTestOrder(t, medicineID, 2)
	// Listed as placed, but another transaction cancelled it in the meantime.
	raced := newStaleTestOrder(t, kernel.NewUUID(), 1)
	alreadyCancelled := newCancelledTestOrder(t, kernel.NewUUID(), 1)

	orderRepo := new(MockStaleOrderRepository)
	medicineRepo := new(MockStaleMedicineRepository)
	uow := new(MockStaleUoW)
	factory := new(MockStaleUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("MedicineRepository").Return(medicineRepo)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	orderRepo.On("GetAllPlacedBefore", ctx, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{stale, raced}, nil).Once()
	orderRepo.On("Get", ctx, stale.ID()).Return(stale, nil).Once()
	orderRepo.On("Get", ctx, raced.ID()).Return(alreadyCancelled, nil).Once()
	orderRepo.On("Update", ctx, stale).Return(nil).Once()
	medicineRepo.On("Release", ctx, medicineID, 2).Return(nil).Once()

	handler := commands.NewCancelStaleOrdersCommandHandler(factory)
	cmd, err := commands.NewCancelStaleOrdersCommand(24 * time.Hour)
	require.NoError(t, err)

	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
	orderRepo.AssertExpectations(t)
	medicineRepo.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_ListingErrorPropagates(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockStaleOrderRepository)
	uow := new(MockStaleUoW)
	factory := new(MockStaleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetAllPlacedBefore", ctx, mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("database unavailable")).Once()

	handler := commands.NewCancelStaleOrdersCommandHandler(factory)
	cmd, err := commands.NewCancelStaleOrdersCommand(time.Hour)
	require.NoError(t, err)

	cancelled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Zero(t, cancelled)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestCancelStaleOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockStaleUoWFactory)
	handler := commands.NewCancelStaleOrdersCommandHandler(factory)

	cancelled, err := handler.Handle(context.Background(), commands.CancelStaleOrdersCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelStaleOrdersCommandIsNotConstructed)
	assert.Zero(t, cancelled)
	factory.AssertNotCalled(t, "Create")
}
