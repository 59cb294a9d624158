package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	sellerLoc, err := kernel.NewGeoPoint(9.0108, 38.7613)
	require.NoError(t, err)
	buyerLoc, err := kernel.NewGeoPoint(8.9806, 38.7578)
	require.NoError(t, err)
	amount, err := kernel.NewMoneyFromString("1000")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.TypeRegular,
		order.DeliveryTypePlatform,
		kernel.NewUUID(),
		kernel.NewUUID(),
		sellerLoc,
		buyerLoc,
		amount,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid_order_starts_placed_and_unpaid", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
		assert.Nil(t, o.Courier())
		require.NoError(t, o.CheckCourierInvariant())
	})

	t.Run("invalid_order_type_fails", func(t *testing.T) {
		sellerLoc, _ := kernel.NewGeoPoint(9, 38)
		amount, _ := kernel.NewMoneyFromString("100")

		_, err := order.NewOrder(
			kernel.NewUUID(), order.Type("bogus"), order.DeliveryTypePlatform,
			kernel.NewUUID(), kernel.NewUUID(), sellerLoc, sellerLoc, amount,
		)
		require.Error(t, err)
	})

	t.Run("zero_amount_fails", func(t *testing.T) {
		sellerLoc, _ := kernel.NewGeoPoint(9, 38)

		_, err := order.NewOrder(
			kernel.NewUUID(), order.TypeRegular, order.DeliveryTypePlatform,
			kernel.NewUUID(), kernel.NewUUID(), sellerLoc, sellerLoc, kernel.ZeroMoney(),
		)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Now()

	t.Run("full_happy_path", func(t *testing.T) {
		o := newTestOrder(t)
		courierID := kernel.NewUUID()

		require.NoError(t, o.ConfirmPayment())
		assert.Equal(t, order.Paid, o.Status())
		require.NoError(t, o.CheckCourierInvariant())

		require.NoError(t, o.Approve(now))
		assert.Equal(t, order.Approved, o.Status())
		require.NotNil(t, o.ApprovedAt())
		require.NoError(t, o.CheckCourierInvariant())

		require.NoError(t, o.Assign(courierID))
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courierID))
		require.NoError(t, o.CheckCourierInvariant())

		require.NoError(t, o.StartTransit(now))
		assert.Equal(t, order.InTransit, o.Status())
		require.NotNil(t, o.PickedUpAt())
		require.NoError(t, o.CheckCourierInvariant())

		require.NoError(t, o.CompleteDelivery(now))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		require.NoError(t, o.CheckCourierInvariant())
	})

	t.Run("approve_requires_confirmed_payment", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Approve(now)

		require.ErrorIs(t, err, order.ErrPaymentNotConfirmed)
		assert.Equal(t, order.Placed, o.Status())
	})

	t.Run("second_assignment_reports_already_assigned", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ConfirmPayment())
		require.NoError(t, o.Approve(now))
		require.NoError(t, o.Assign(kernel.NewUUID()))

		err := o.Assign(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrAlreadyAssigned)
		require.NoError(t, o.CheckCourierInvariant())
	})

	t.Run("pickup_requires_assignment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ConfirmPayment())
		require.NoError(t, o.Approve(now))

		err := o.StartTransit(now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Approved, o.Status())
	})

	t.Run("cancel_releases_assigned_courier", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ConfirmPayment())
		require.NoError(t, o.Approve(now))
		require.NoError(t, o.Assign(kernel.NewUUID()))

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.Courier())
		require.NoError(t, o.CheckCourierInvariant())
	})

	t.Run("cancel_after_delivery_is_invalid", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ConfirmPayment())
		require.NoError(t, o.Approve(now))
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.StartTransit(now))
		require.NoError(t, o.CompleteDelivery(now))

		err := o.Cancel()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_assigned_order", func(t *testing.T) {
		src := newTestOrder(t)
		courierID := kernel.NewUUID()
		now := time.Now()

		restored, err := order.RestoreOrder(
			src.ID(), src.OrderType(), src.DeliveryType(),
			order.Assigned, order.PaymentPaid, &courierID,
			src.SellerID(), src.BuyerID(),
			src.SellerLocation(), src.BuyerLocation(), src.TotalAmount(),
			&now, nil, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, restored.Status())
		require.NotNil(t, restored.Courier())
		assert.True(t, restored.Courier().IsEqual(courierID))
		require.NoError(t, restored.CheckCourierInvariant())
	})

	t.Run("rejects_courier_on_unassigned_status", func(t *testing.T) {
		src := newTestOrder(t)
		courierID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			src.ID(), src.OrderType(), src.DeliveryType(),
			order.Approved, order.PaymentPaid, &courierID,
			src.SellerID(), src.BuyerID(),
			src.SellerLocation(), src.BuyerLocation(), src.TotalAmount(),
			nil, nil, nil,
		)

		require.Error(t, err)
	})

	t.Run("rejects_assigned_status_without_courier", func(t *testing.T) {
		src := newTestOrder(t)

		_, err := order.RestoreOrder(
			src.ID(), src.OrderType(), src.DeliveryType(),
			order.Assigned, order.PaymentPaid, nil,
			src.SellerID(), src.BuyerID(),
			src.SellerLocation(), src.BuyerLocation(), src.TotalAmount(),
			nil, nil, nil,
		)

		require.Error(t, err)
	})
}
