package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func heartbeatHandler(mockUoW *MockUoW) commands.RecordHeartbeatCommandHandler {
	return commands.NewRecordHeartbeatCommandHandler(
		courierUoWFactoryFunc(func() commands.CourierUoW { return mockUoW }),
	)
}

func TestRecordHeartbeatCommandHandler_Handle_WritesTelemetryOnly(t *testing.T) {
	// Arrange
	ctx := t.Context()
	assignee := availableCourier(t)
	require.NoError(t, assignee.TakeJob())
	reported := testGeoPoint(t, 9.0420, 38.7500)

	mockCouriers := new(MockCourierRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCouriers)
	mockCouriers.On("Get", ctx, assignee.ID()).Return(assignee, nil).Once()
	mockCouriers.On("UpdateTelemetry", ctx, assignee).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRecordHeartbeatCommand(assignee.ID(), reported, false)
	require.NoError(t, err)

	// Act
	err = heartbeatHandler(mockUoW).Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 9.0420, assignee.Location().Latitude(), 1e-9)
	assert.False(t, assignee.IsOnline())
	assert.Equal(t, 1, assignee.ActiveJobs(), "heartbeat must not touch job slots")

	// Telemetry goes through the dedicated write path; a full-row update
	// from this snapshot could overwrite job slots committed elsewhere.
	mockCouriers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertExpectations(t)
}

func TestRecordHeartbeatCommandHandler_Handle_UnknownCourier(t *testing.T) {
	// Arrange
	ctx := t.Context()
	courierID := kernel.NewUUID()

	mockCouriers := new(MockCourierRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCouriers)
	mockCouriers.On("Get", ctx, courierID).
		Return(nil, errs.NewObjectNotFoundError("courier", courierID)).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRecordHeartbeatCommand(courierID, testGeoPoint(t, 9.01, 38.76), true)
	require.NoError(t, err)

	// Act
	err = heartbeatHandler(mockUoW).Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}
