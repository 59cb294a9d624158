package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/verification"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Mock implementations shared by the handler tests.

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TryAssign(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) TryTransition(ctx context.Context, aggregate *order.Order, from order.Status) error {
	args := m.Called(ctx, aggregate, from)
	return args.Error(0)
}

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) UpdateTelemetry(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockEarningsRepository struct {
	mock.Mock
}

func (m *MockEarningsRepository) Add(ctx context.Context, aggregate *earnings.Entry) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEarningsRepository) Update(ctx context.Context, aggregate *earnings.Entry) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEarningsRepository) TryLink(ctx context.Context, aggregate *earnings.Entry) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEarningsRepository) Get(ctx context.Context, id kernel.UUID) (*earnings.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*earnings.Entry), args.Error(1)
}

func (m *MockEarningsRepository) GetAllReleasable(ctx context.Context, now time.Time) ([]*earnings.Entry, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*earnings.Entry), args.Error(1)
}

func (m *MockEarningsRepository) GetAllAvailableByPayee(ctx context.Context, payeeID kernel.UUID) ([]*earnings.Entry, error) {
	args := m.Called(ctx, payeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*earnings.Entry), args.Error(1)
}

func (m *MockEarningsRepository) GetAllByPayout(ctx context.Context, payoutID kernel.UUID) ([]*earnings.Entry, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*earnings.Entry), args.Error(1)
}

type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) Add(ctx context.Context, aggregate *earnings.Payout) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPayoutRepository) Update(ctx context.Context, aggregate *earnings.Payout) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*earnings.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*earnings.Payout), args.Error(1)
}

func (m *MockPayoutRepository) GetOpenByPayee(ctx context.Context, payeeID kernel.UUID) (*earnings.Payout, error) {
	args := m.Called(ctx, payeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*earnings.Payout), args.Error(1)
}

type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) Add(ctx context.Context, aggregate *verification.Code) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCodeRepository) Update(ctx context.Context, aggregate *verification.Code) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCodeRepository) GetActiveByDeliveryAndStep(
	ctx context.Context, deliveryID kernel.UUID, step verification.Step,
) (*verification.Code, error) {
	args := m.Called(ctx, deliveryID, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verification.Code), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CourierAssigned(ctx context.Context, orderID, courierID kernel.UUID) {
	m.Called(ctx, orderID, courierID)
}

func (m *MockNotifier) DeliveryCompleted(ctx context.Context, orderID, deliveryID kernel.UUID) {
	m.Called(ctx, orderID, deliveryID)
}

func (m *MockNotifier) DispatchStalled(ctx context.Context, orderID kernel.UUID, waitingSince time.Time) {
	m.Called(ctx, orderID, waitingSince)
}

func (m *MockNotifier) PayoutResolved(ctx context.Context, payoutID, payeeID kernel.UUID, status string) {
	m.Called(ctx, payoutID, payeeID, status)
}

// MockUoW satisfies every narrow unit-of-work interface the handlers use.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) EarningsRepository() ports.EarningsRepository {
	return m.Called().Get(0).(ports.EarningsRepository)
}

func (m *MockUoW) PayoutRepository() ports.PayoutRepository {
	return m.Called().Get(0).(ports.PayoutRepository)
}

func (m *MockUoW) VerificationCodeRepository() ports.VerificationCodeRepository {
	return m.Called().Get(0).(ports.VerificationCodeRepository)
}

// Func-style factories bind the mock UoW into the narrow factory
// interfaces the handlers expect.

type orderUoWFactoryFunc func() commands.OrderUoW

func (f orderUoWFactoryFunc) Create() commands.OrderUoW { return f() }

type courierUoWFactoryFunc func() commands.CourierUoW

func (f courierUoWFactoryFunc) Create() commands.CourierUoW { return f() }

type dispatchUoWFactoryFunc func() commands.DispatchUoW

func (f dispatchUoWFactoryFunc) Create() commands.DispatchUoW { return f() }

type codeUoWFactoryFunc func() commands.CodeUoW

func (f codeUoWFactoryFunc) Create() commands.CodeUoW { return f() }

type handoffUoWFactoryFunc func() commands.HandoffUoW

func (f handoffUoWFactoryFunc) Create() commands.HandoffUoW { return f() }

type ledgerUoWFactoryFunc func() commands.LedgerUoW

func (f ledgerUoWFactoryFunc) Create() commands.LedgerUoW { return f() }

type payoutUoWFactoryFunc func() commands.PayoutUoW

func (f payoutUoWFactoryFunc) Create() commands.PayoutUoW { return f() }
