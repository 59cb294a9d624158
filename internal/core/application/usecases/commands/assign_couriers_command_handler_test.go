package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssignHandler(
	mockUoW *MockUoW, notifier *MockNotifier, maxWait time.Duration,
) commands.AssignCouriersCommandHandler {
	return commands.NewAssignCouriersCommandHandler(
		dispatchUoWFactoryFunc(func() commands.DispatchUoW { return mockUoW }),
		services.NewCourierMatcher(),
		notifier,
		maxWait,
	)
}

func TestAssignCouriersCommandHandler_Handle_AssignsAndNotifies(t *testing.T) {
	// Arrange
	ctx := t.Context()
	ord := approvedOrder(t)
	best := availableCourier(t)

	mockOrders := new(MockOrderRepository)
	mockCouriers := new(MockCourierRepository)
	mockDeliveries := new(MockDeliveryRepository)
	mockUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockOrders)
	mockUoW.On("CourierRepository").Return(mockCouriers)
	mockUoW.On("DeliveryRepository").Return(mockDeliveries)
	mockOrders.On("GetAllAwaitingDispatch", ctx).Return([]*order.Order{ord}, nil).Once()
	mockCouriers.On("GetAllAvailable", ctx).Return([]*courier.Courier{best}, nil).Once()
	mockOrders.On("TryAssign", ctx, ord).Return(nil).Once()
	mockCouriers.On("Update", ctx, best).Return(nil).Once()
	mockDeliveries.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	notifier.On("CourierAssigned", ctx, ord.ID(), best.ID()).Once()

	handler := newAssignHandler(mockUoW, notifier, time.Hour)

	// Act
	err := handler.Handle(ctx, commands.NewAssignCouriersCommand())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Assigned, ord.Status())
	require.NotNil(t, ord.Courier())
	assert.True(t, ord.Courier().IsEqual(best.ID()))
	assert.Equal(t, 1, best.ActiveJobs())

	record := mockDeliveries.Calls[0].Arguments.Get(1).(*delivery.Delivery)
	assert.True(t, record.OrderID().IsEqual(ord.ID()))
	assert.True(t, record.CourierID().IsEqual(best.ID()))
	assert.Equal(t, delivery.Assigned, record.Status())

	notifier.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestAssignCouriersCommandHandler_Handle_EmptyQueue(t *testing.T) {
	// Arrange
	ctx := t.Context()
	mockOrders := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockOrders)
	mockOrders.On("GetAllAwaitingDispatch", ctx).Return([]*order.Order{}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := newAssignHandler(mockUoW, notifier, time.Hour)

	// Act
	err := handler.Handle(ctx, commands.NewAssignCouriersCommand())

	// Assert
	require.NoError(t, err)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "CourierAssigned", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignCouriersCommandHandler_Handle_NoEligibleCourierKeepsOrderQueued(t *testing.T) {
	// Arrange
	ctx := t.Context()
	ord := approvedOrder(t)

	mockOrders := new(MockOrderRepository)
	mockCouriers := new(MockCourierRepository)
	mockUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockOrders)
	mockUoW.On("CourierRepository").Return(mockCouriers)
	mockOrders.On("GetAllAwaitingDispatch", ctx).Return([]*order.Order{ord}, nil).Once()
	mockCouriers.On("GetAllAvailable", ctx).Return([]*courier.Courier{}, nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := newAssignHandler(mockUoW, notifier, time.Hour)

	// Act
	err := handler.Handle(ctx, commands.NewAssignCouriersCommand())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Approved, ord.Status())
	assert.Nil(t, ord.Courier())
}

func TestAssignCouriersCommandHandler_Handle_EscalatesStalledOrder(t *testing.T) {
	// Arrange
	ctx := t.Context()
	ord := approvedOrder(t) // approved one minute ago

	mockOrders := new(MockOrderRepository)
	mockCouriers := new(MockCourierRepository)
	mockUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockOrders)
	mockUoW.On("CourierRepository").Return(mockCouriers)
	mockOrders.On("GetAllAwaitingDispatch", ctx).Return([]*order.Order{ord}, nil).Once()
	mockCouriers.On("GetAllAvailable", ctx).Return([]*courier.Courier{}, nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()
	notifier.On("DispatchStalled", ctx, ord.ID(), *ord.ApprovedAt()).Once()

	handler := newAssignHandler(mockUoW, notifier, time.Second)

	// Act
	err := handler.Handle(ctx, commands.NewAssignCouriersCommand())

	// Assert
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestAssignCouriersCommandHandler_Handle_SkipsOrderLostToRace(t *testing.T) {
	// Arrange
	ctx := t.Context()
	ord := approvedOrder(t)
	best := availableCourier(t)

	mockOrders := new(MockOrderRepository)
	mockCouriers := new(MockCourierRepository)
	mockDeliveries := new(MockDeliveryRepository)
	mockUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockOrders)
	mockUoW.On("CourierRepository").Return(mockCouriers)
	mockUoW.On("DeliveryRepository").Return(mockDeliveries)
	mockOrders.On("GetAllAwaitingDispatch", ctx).Return([]*order.Order{ord}, nil).Once()
	mockCouriers.On("GetAllAvailable", ctx).Return([]*courier.Courier{best}, nil).Once()
	mockOrders.On("TryAssign", ctx, ord).Return(order.ErrAlreadyAssigned).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := newAssignHandler(mockUoW, notifier, time.Hour)

	// Act
	err := handler.Handle(ctx, commands.NewAssignCouriersCommand())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, best.ActiveJobs())
	mockDeliveries.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "CourierAssigned", mock.Anything, mock.Anything, mock.Anything)
}
