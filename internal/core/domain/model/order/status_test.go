package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []order.Status{
		order.Placed, order.Paid, order.Approved,
		order.Assigned, order.InTransit, order.Delivered, order.Cancelled,
	}
	for _, s := range valid {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("unknown_is_invalid", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Placed", order.Placed.String())
	assert.Equal(t, "InTransit", order.InTransit.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		s := order.Placed

		s, err := s.MarkPaid()
		require.NoError(t, err)
		assert.Equal(t, order.Paid, s)

		s, err = s.Approve()
		require.NoError(t, err)
		assert.Equal(t, order.Approved, s)

		s, err = s.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, s)

		s, err = s.StartTransit()
		require.NoError(t, err)
		assert.Equal(t, order.InTransit, s)

		s, err = s.CompleteDelivery()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)
		assert.True(t, s.IsTerminal())
	})

	t.Run("approve_from_placed", func(t *testing.T) {
		s, err := order.Placed.Approve()
		require.NoError(t, err)
		assert.Equal(t, order.Approved, s)
	})

	t.Run("assign_before_approval_is_invalid", func(t *testing.T) {
		_, err := order.Paid.Assign()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("assign_twice_reports_already_assigned", func(t *testing.T) {
		for _, s := range []order.Status{order.Assigned, order.InTransit, order.Delivered} {
			_, err := s.Assign()
			require.ErrorIs(t, err, order.ErrAlreadyAssigned, s.String())
		}
	})

	t.Run("delivery_before_transit_is_invalid", func(t *testing.T) {
		_, err := order.Assigned.CompleteDelivery()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("cancel_from_any_non_terminal_state", func(t *testing.T) {
		for _, s := range []order.Status{order.Placed, order.Paid, order.Approved, order.Assigned, order.InTransit} {
			got, err := s.Cancel()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Cancelled, got)
		}
	})

	t.Run("cancel_terminal_states_is_invalid", func(t *testing.T) {
		_, err := order.Delivered.Cancel()
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		_, err = order.Cancelled.Cancel()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	t.Run("courier_required_in_active_states", func(t *testing.T) {
		for _, s := range []order.Status{order.Assigned, order.InTransit, order.Delivered} {
			require.NoError(t, s.ValidateCanHaveCourier(true), s.String())
			require.Error(t, s.ValidateCanHaveCourier(false), s.String())
		}
	})

	t.Run("courier_forbidden_before_assignment", func(t *testing.T) {
		for _, s := range []order.Status{order.Placed, order.Paid, order.Approved, order.Cancelled} {
			require.NoError(t, s.ValidateCanHaveCourier(false), s.String())
			require.Error(t, s.ValidateCanHaveCourier(true), s.String())
		}
	})
}
