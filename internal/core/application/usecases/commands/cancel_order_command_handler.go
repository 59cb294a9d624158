package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/verification"
	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation.
//
// Cancellation is allowed from any non-terminal order status. When a
// courier was already assigned, their job slot is released and the
// delivery record is cancelled; any still-active verification codes for
// the delivery are revoked so a cancelled handoff cannot be "proven"
// later.
type CancelOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory DispatchUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Returns order.ErrInvalidTransition if the order is already Delivered
// or Cancelled.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignedCourier := aggregate.Courier()
	from := aggregate.Status()

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	// Conditional on the status the cancel was decided against, so a
	// delivery confirmation that committed in between is never
	// overwritten by this stale cancel.
	if err = orderRepo.TryTransition(ctx, aggregate, from); err != nil {
		return err
	}

	if assignedCourier != nil {
		if err = h.releaseDispatch(ctx, uow, cmd, *assignedCourier); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// releaseDispatch unwinds the dispatch side of a cancelled order: frees
// the courier's job slot, cancels the delivery record, and revokes
// outstanding verification codes.
func (h CancelOrderCommandHandler) releaseDispatch(
	ctx context.Context,
	uow DispatchUoW,
	cmd CancelOrderCommand,
	courierID kernel.UUID,
) error {
	courierRepo := uow.CourierRepository()

	assignee, err := courierRepo.Get(ctx, courierID)
	if err != nil {
		return err
	}

	if err = assignee.ReleaseJob(); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, assignee); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()

	record, err := deliveryRepo.GetByOrderID(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = record.Cancel(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, record); err != nil {
		return err
	}

	return h.revokeCodes(ctx, uow, record.ID())
}

// revokeCodes invalidates any active pickup and delivery codes.
func (h CancelOrderCommandHandler) revokeCodes(
	ctx context.Context, uow DispatchUoW, deliveryID kernel.UUID,
) error {
	codeRepo := uow.VerificationCodeRepository()
	now := time.Now().UTC()

	for _, step := range []verification.Step{verification.StepPickup, verification.StepDelivery} {
		code, err := codeRepo.GetActiveByDeliveryAndStep(ctx, deliveryID, step)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		code.Revoke(now)
		if err = codeRepo.Update(ctx, code); err != nil {
			return err
		}
	}

	return nil
}
