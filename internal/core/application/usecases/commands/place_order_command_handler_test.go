package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	amount, err := kernel.NewMoneyFromString("250.00")
	require.NoError(t, err)

	cmd, err := commands.NewPlaceOrderCommand(
		order.TypeRegular, order.DeliveryTypePlatform,
		kernel.NewUUID(), kernel.NewUUID(),
		testGeoPoint(t, 9.01, 38.76), testGeoPoint(t, 9.03, 38.74),
		amount,
	)
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPlaceOrderCommandHandler(
		orderUoWFactoryFunc(func() commands.OrderUoW { return mockUoW }),
	)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)

	added := mockRepo.Calls[0].Arguments.Get(1).(*order.Order)
	assert.True(t, added.ID().IsEqual(cmd.OrderID()))
	assert.Equal(t, order.Placed, added.Status())
}

func TestPlaceOrderCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	handler := commands.NewPlaceOrderCommandHandler(
		orderUoWFactoryFunc(func() commands.OrderUoW { return new(MockUoW) }),
	)

	err := handler.Handle(t.Context(), commands.PlaceOrderCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}
