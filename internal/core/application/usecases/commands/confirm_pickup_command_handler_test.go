package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pickupCode(t *testing.T, deliveryID kernel.UUID) (*verification.Code, string) {
	t.Helper()

	code, plaintext, err := verification.NewCode(
		kernel.NewUUID(), deliveryID, verification.StepPickup, verification.EncodingQR,
		time.Hour, time.Now().UTC(),
	)
	require.NoError(t, err)
	return code, plaintext
}

func TestConfirmPickupCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	best := availableCourier(t)
	ord := assignedOrder(t, best.ID())
	record := assignedDelivery(t, ord.ID(), best.ID())
	code, plaintext := pickupCode(t, record.ID())

	mockOrders := new(MockOrderRepository)
	mockDeliveries := new(MockDeliveryRepository)
	mockCodes := new(MockCodeRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockOrders)
	mockUoW.On("DeliveryRepository").Return(mockDeliveries)
	mockUoW.On("VerificationCodeRepository").Return(mockCodes)
	mockOrders.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	mockDeliveries.On("GetByOrderID", ctx, ord.ID()).Return(record, nil).Once()
	mockCodes.On("GetActiveByDeliveryAndStep", ctx, record.ID(), verification.StepPickup).
		Return(code, nil).Once()
	mockCodes.On("Update", ctx, code).Return(nil).Once()
	mockDeliveries.On("Update", ctx, record).Return(nil).Once()
	mockOrders.On("Update", ctx, ord).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewConfirmPickupCommand(ord.ID(), plaintext)
	require.NoError(t, err)

	handler := commands.NewConfirmPickupCommandHandler(
		handoffUoWFactoryFunc(func() commands.HandoffUoW { return mockUoW }),
	)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.InTransit, ord.Status())
	assert.Equal(t, delivery.InTransit, record.Status())
	assert.NotNil(t, record.PickupConfirmedAt())
	assert.NotNil(t, code.ConsumedAt())
	mockUoW.AssertExpectations(t)
}

func TestConfirmPickupCommandHandler_Handle_WrongCodeChangesNothing(t *testing.T) {
	// Arrange
	ctx := t.Context()
	best := availableCourier(t)
	ord := assignedOrder(t, best.ID())
	record := assignedDelivery(t, ord.ID(), best.ID())
	code, _ := pickupCode(t, record.ID())

	mockOrders := new(MockOrderRepository)
	mockDeliveries := new(MockDeliveryRepository)
	mockCodes := new(MockCodeRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("OrderRepository").Return(mockOrders)
	mockUoW.On("DeliveryRepository").Return(mockDeliveries)
	mockUoW.On("VerificationCodeRepository").Return(mockCodes)
	mockOrders.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	mockDeliveries.On("GetByOrderID", ctx, ord.ID()).Return(record, nil).Once()
	mockCodes.On("GetActiveByDeliveryAndStep", ctx, record.ID(), verification.StepPickup).
		Return(code, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewConfirmPickupCommand(ord.ID(), "not-the-secret")
	require.NoError(t, err)

	handler := commands.NewConfirmPickupCommandHandler(
		handoffUoWFactoryFunc(func() commands.HandoffUoW { return mockUoW }),
	)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, verification.ErrCodeMismatch)
	require.ErrorIs(t, err, verification.ErrVerificationFailed)
	assert.Equal(t, order.Assigned, ord.Status())
	assert.Equal(t, delivery.Assigned, record.Status())
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
	mockOrders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
