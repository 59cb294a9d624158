package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func releasedEntry(t *testing.T, payeeID kernel.UUID, amount string) *earnings.Entry {
	t.Helper()

	now := time.Now().UTC()
	gross, err := kernel.NewMoneyFromString(amount)
	require.NoError(t, err)

	entry, err := earnings.NewSellerEntry(
		kernel.NewUUID(), payeeID, kernel.NewUUID(), gross, decimal.Zero, now,
	)
	require.NoError(t, err)
	require.NoError(t, entry.Release(now))
	return entry
}

func TestRequestPayoutCommandHandler_Handle_BatchesAvailableEntries(t *testing.T) {
	// Arrange
	ctx := t.Context()
	payeeID := kernel.NewUUID()
	entries := []*earnings.Entry{
		releasedEntry(t, payeeID, "850.00"),
		releasedEntry(t, payeeID, "150.00"),
	}

	mockPayouts := new(MockPayoutRepository)
	mockEarnings := new(MockEarningsRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("PayoutRepository").Return(mockPayouts)
	mockUoW.On("EarningsRepository").Return(mockEarnings)
	mockPayouts.On("GetOpenByPayee", ctx, payeeID).
		Return(nil, errs.NewObjectNotFoundError("payeeID", payeeID)).Once()
	mockEarnings.On("GetAllAvailableByPayee", ctx, payeeID).Return(entries, nil).Once()
	mockPayouts.On("Add", ctx, mock.AnythingOfType("*earnings.Payout")).Return(nil).Once()
	mockEarnings.On("TryLink", ctx, mock.AnythingOfType("*earnings.Entry")).Return(nil).Twice()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRequestPayoutCommand(payeeID, earnings.BeneficiarySeller, "CBE-1000123456")
	require.NoError(t, err)

	handler := commands.NewRequestPayoutCommandHandler(
		payoutUoWFactoryFunc(func() commands.PayoutUoW { return mockUoW }),
	)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)

	payout := mockPayouts.Calls[1].Arguments.Get(1).(*earnings.Payout)
	assert.Equal(t, "1000.00", payout.Amount().String())
	assert.Equal(t, earnings.PayoutPending, payout.Status())

	for _, entry := range entries {
		require.NotNil(t, entry.PayoutID())
		assert.True(t, entry.PayoutID().IsEqual(payout.ID()))
	}
	mockUoW.AssertExpectations(t)
}

func TestRequestPayoutCommandHandler_Handle_OpenPayoutConflicts(t *testing.T) {
	// Arrange
	ctx := t.Context()
	payeeID := kernel.NewUUID()
	open, err := earnings.NewPayout(
		kernel.NewUUID(), payeeID, earnings.BeneficiarySeller,
		[]*earnings.Entry{releasedEntry(t, payeeID, "100.00")},
		"CBE-1000123456", time.Now().UTC(),
	)
	require.NoError(t, err)

	mockPayouts := new(MockPayoutRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("PayoutRepository").Return(mockPayouts)
	mockPayouts.On("GetOpenByPayee", ctx, payeeID).Return(open, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRequestPayoutCommand(payeeID, earnings.BeneficiarySeller, "CBE-1000123456")
	require.NoError(t, err)

	handler := commands.NewRequestPayoutCommandHandler(
		payoutUoWFactoryFunc(func() commands.PayoutUoW { return mockUoW }),
	)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, earnings.ErrPayoutConflict)
	mockPayouts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRequestPayoutCommandHandler_Handle_ConcurrentRequest_LoserAborts(t *testing.T) {
	// Two requests race past the open-payout check before either commits.
	// The loser's entry was already frozen by the winner's row-level
	// link, so its conditional link fails and nothing is committed.

	// Arrange
	ctx := t.Context()
	payeeID := kernel.NewUUID()
	staleCopy := []*earnings.Entry{releasedEntry(t, payeeID, "850.00")}

	mockPayouts := new(MockPayoutRepository)
	mockEarnings := new(MockEarningsRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("PayoutRepository").Return(mockPayouts)
	mockUoW.On("EarningsRepository").Return(mockEarnings)
	mockPayouts.On("GetOpenByPayee", ctx, payeeID).
		Return(nil, errs.NewObjectNotFoundError("payeeID", payeeID)).Once()
	mockEarnings.On("GetAllAvailableByPayee", ctx, payeeID).Return(staleCopy, nil).Once()
	mockPayouts.On("Add", ctx, mock.AnythingOfType("*earnings.Payout")).Return(nil).Once()
	mockEarnings.On("TryLink", ctx, mock.AnythingOfType("*earnings.Entry")).
		Return(earnings.ErrPayoutConflict).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRequestPayoutCommand(payeeID, earnings.BeneficiarySeller, "CBE-1000123456")
	require.NoError(t, err)

	handler := commands.NewRequestPayoutCommandHandler(
		payoutUoWFactoryFunc(func() commands.PayoutUoW { return mockUoW }),
	)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, earnings.ErrPayoutConflict)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRequestPayoutCommandHandler_Handle_NothingAvailable(t *testing.T) {
	// Arrange
	ctx := t.Context()
	payeeID := kernel.NewUUID()

	mockPayouts := new(MockPayoutRepository)
	mockEarnings := new(MockEarningsRepository)
	mockUoW := new(MockUoW)

	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("PayoutRepository").Return(mockPayouts)
	mockUoW.On("EarningsRepository").Return(mockEarnings)
	mockPayouts.On("GetOpenByPayee", ctx, payeeID).
		Return(nil, errs.NewObjectNotFoundError("payeeID", payeeID)).Once()
	mockEarnings.On("GetAllAvailableByPayee", ctx, payeeID).Return([]*earnings.Entry{}, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRequestPayoutCommand(payeeID, earnings.BeneficiarySeller, "CBE-1000123456")
	require.NoError(t, err)

	handler := commands.NewRequestPayoutCommandHandler(
		payoutUoWFactoryFunc(func() commands.PayoutUoW { return mockUoW }),
	)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrNothingToPayOut)
}
