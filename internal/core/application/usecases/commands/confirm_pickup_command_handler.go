package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/verification"
)

// ConfirmPickupCommandHandler verifies the seller-side handoff.
//
// The presented code is consumed against the delivery's active pickup
// code; on success the delivery and the order both move to in-transit in
// the same transaction. A failed verification (mismatch, expiry, replay,
// revocation) changes nothing and surfaces as a typed error wrapping
// verification.ErrVerificationFailed.
type ConfirmPickupCommandHandler struct {
	uowFactory HandoffUoWFactory
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmation.
func NewConfirmPickupCommandHandler(uowFactory HandoffUoWFactory) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup confirmation command.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) error {
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

	code, err := codeRepo.GetActiveByDeliveryAndStep(ctx, record.ID(), verification.StepPickup)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if err = code.Consume(cmd.PresentedCode(), now); err != nil {
		return err
	}

	if err = record.ConfirmPickup(now); err != nil {
		return err
	}

	if err = aggregate.StartTransit(now); err != nil {
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

	return uow.Commit(ctx)
}
