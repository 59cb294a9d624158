package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Notifier delivers best-effort notifications about dispatch events.
// Implementations must not fail the calling use case: delivery problems
// are logged and swallowed, never returned.
type Notifier interface {
	// CourierAssigned tells the courier and the seller that a courier
	// took the order.
	CourierAssigned(ctx context.Context, orderID, courierID kernel.UUID)

	// DeliveryCompleted tells the parties that the buyer confirmed
	// receipt and settlement entries were written.
	DeliveryCompleted(ctx context.Context, orderID, deliveryID kernel.UUID)

	// DispatchStalled escalates an order that has waited for a courier
	// beyond the configured threshold to the operations team.
	DispatchStalled(ctx context.Context, orderID kernel.UUID, waitingSince time.Time)

	// PayoutResolved tells the payee their payout reached a terminal
	// state (completed, rejected, or failed).
	PayoutResolved(ctx context.Context, payoutID, payeeID kernel.UUID, status string)
}
