package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/verification"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ConfirmDeliveryCommandHandler verifies the buyer-side handoff and
// settles the delivery.
//
// One transaction covers the full completion: the delivery code is
// consumed, the delivery and order reach their terminal success states,
// the courier's slot frees up with a completed-delivery credit, and the
// earnings ledger gains one seller entry (commission split of the order
// amount) and one courier entry (delivery fee). Both entries start
// pending and become available when the holding window passes.
type ConfirmDeliveryCommandHandler struct {
	uowFactory HandoffUoWFactory
	fees       services.FeeCalculator
	notifier   ports.Notifier
	holdPeriod time.Duration
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery
// confirmation and settlement.
//
// Parameters:
//   - uowFactory: Transaction factory spanning the full handoff scope
//   - fees: Commission rate and courier fee schedule
//   - notifier: Best-effort event notifications
//   - holdPeriod: Dispute-holding window applied to new ledger entries
func NewConfirmDeliveryCommandHandler(
	uowFactory HandoffUoWFactory,
	fees services.FeeCalculator,
	notifier ports.Notifier,
	holdPeriod time.Duration,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
		notifier:   notifier,
		holdPeriod: holdPeriod,
	}
}

// Handle processes the delivery confirmation command.
// A failed verification changes nothing; duplicate submissions after a
// success fail with verification.ErrCodeConsumed.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()
	codeRepo := uow.VerificationCodeRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	record, err := deliveryRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	code, err := codeRepo.GetActiveByDeliveryAndStep(ctx, record.ID(), verification.StepDelivery)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if err = code.Consume(cmd.PresentedCode(), now); err != nil {
		return err
	}

	if err = record.ConfirmDelivery(now); err != nil {
		return err
	}

	if err = aggregate.CompleteDelivery(now); err != nil {
		return err
	}

	if err = codeRepo.Update(ctx, code); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, record); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.creditCourier(ctx, uow, record); err != nil {
		return err
	}

	if err = h.writeLedger(ctx, uow, aggregate, record, now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.DeliveryCompleted(ctx, aggregate.ID(), record.ID())
	return nil
}

// creditCourier frees the courier's job slot and credits the completed
// delivery to their history.
func (h ConfirmDeliveryCommandHandler) creditCourier(
	ctx context.Context, uow HandoffUoW, record *delivery.Delivery,
) error {
	courierRepo := uow.CourierRepository()

	assignee, err := courierRepo.Get(ctx, record.CourierID())
	if err != nil {
		return err
	}

	if err = assignee.CompleteJob(); err != nil {
		return err
	}

	return courierRepo.Update(ctx, assignee)
}

// writeLedger creates the seller and courier settlement entries for a
// completed delivery.
func (h ConfirmDeliveryCommandHandler) writeLedger(
	ctx context.Context,
	uow HandoffUoW,
	aggregate *order.Order,
	record *delivery.Delivery,
	now time.Time,
) error {
	availableDate := now.Add(h.holdPeriod)
	earningsRepo := uow.EarningsRepository()

	sellerEntry, err := earnings.NewSellerEntry(
		kernel.NewUUID(), aggregate.SellerID(), aggregate.ID(),
		aggregate.TotalAmount(), h.fees.CommissionRate(), availableDate,
	)
	if err != nil {
		return err
	}

	if err = earningsRepo.Add(ctx, sellerEntry); err != nil {
		return err
	}

	fee, err := h.fees.CourierFee(record.DistanceKm())
	if err != nil {
		return err
	}

	courierEntry, err := earnings.NewCourierEntry(
		kernel.NewUUID(), record.CourierID(), aggregate.ID(), record.ID(),
		fee, availableDate,
	)
	if err != nil {
		return err
	}

	return earningsRepo.Add(ctx, courierEntry)
}
