// Package notify provides the outbound notification adapter. The current
// implementation emits structured log records; a push or SMS channel can
// replace it behind the same port without touching the use cases.
package notify

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// SlogNotifier implements ports.Notifier by writing structured log
// records. Notifications are best-effort: nothing here can fail the
// calling use case.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier that logs dispatch events.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With("component", "notifier"),
	}
}

// CourierAssigned reports a successful courier match.
func (n *SlogNotifier) CourierAssigned(ctx context.Context, orderID, courierID kernel.UUID) {
	n.logger.InfoContext(ctx, "courier assigned",
		"order_id", orderID.String(),
		"courier_id", courierID.String(),
	)
}

// DeliveryCompleted reports a confirmed handoff and written settlement.
func (n *SlogNotifier) DeliveryCompleted(ctx context.Context, orderID, deliveryID kernel.UUID) {
	n.logger.InfoContext(ctx, "delivery completed",
		"order_id", orderID.String(),
		"delivery_id", deliveryID.String(),
	)
}

// DispatchStalled escalates an order stuck in the dispatch queue.
func (n *SlogNotifier) DispatchStalled(ctx context.Context, orderID kernel.UUID, waitingSince time.Time) {
	n.logger.WarnContext(ctx, "dispatch stalled",
		"order_id", orderID.String(),
		"waiting_since", waitingSince,
	)
}

// PayoutResolved reports a payout reaching a terminal state.
func (n *SlogNotifier) PayoutResolved(ctx context.Context, payoutID, payeeID kernel.UUID, status string) {
	n.logger.InfoContext(ctx, "payout resolved",
		"payout_id", payoutID.String(),
		"payee_id", payeeID.String(),
		"status", status,
	)
}
