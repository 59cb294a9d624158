package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testNow() time.Time {
	return time.Now().UTC()
}

func testGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()

	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()

	amount, err := kernel.NewMoneyFromString("1000.00")
	require.NoError(t, err)

	ord, err := order.NewOrder(
		kernel.NewUUID(), order.TypeRegular, order.DeliveryTypePlatform,
		kernel.NewUUID(), kernel.NewUUID(),
		testGeoPoint(t, 9.0108, 38.7613), testGeoPoint(t, 9.0300, 38.7400),
		amount,
	)
	require.NoError(t, err)
	return ord
}

func approvedOrder(t *testing.T) *order.Order {
	t.Helper()

	ord := placedOrder(t)
	require.NoError(t, ord.ConfirmPayment())
	require.NoError(t, ord.Approve(time.Now().UTC().Add(-time.Minute)))
	return ord
}

func assignedOrder(t *testing.T, courierID kernel.UUID) *order.Order {
	t.Helper()

	ord := approvedOrder(t)
	require.NoError(t, ord.Assign(courierID))
	return ord
}

func availableCourier(t *testing.T) *courier.Courier {
	t.Helper()

	loc := testGeoPoint(t, 9.0110, 38.7610)
	c, err := courier.NewCourier(kernel.NewUUID(), "Abel", loc, 10)
	require.NoError(t, err)
	require.NoError(t, c.RecordHeartbeat(loc, true, time.Now().UTC()))
	return c
}

func assignedDelivery(t *testing.T, orderID, courierID kernel.UUID) *delivery.Delivery {
	t.Helper()

	record, err := delivery.NewDelivery(kernel.NewUUID(), orderID, courierID, delivery.MethodQR, 3.2)
	require.NoError(t, err)
	return record
}
