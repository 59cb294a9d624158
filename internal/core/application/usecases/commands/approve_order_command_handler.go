package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// ApproveOrderCommandHandler moves a paid order into the dispatch queue.
// Confirms the payment on the aggregate and approves it in one
// transaction; approval stamps the time the order started waiting for a
// courier, which the sweep uses for age-ordering and stall escalation.
type ApproveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApproveOrderCommandHandler creates a handler for order approval.
func NewApproveOrderCommandHandler(uowFactory OrderUoWFactory) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval command.
// Returns order.ErrInvalidTransition if the order is not in an
// approvable status and order.ErrPaymentNotConfirmed if payment
// confirmation is missing after the confirm step.
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
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

	// An order persisted in Paid already carries its confirmation;
	// re-confirming would fail the Placed precondition.
	if aggregate.PaymentStatus() != order.PaymentPaid {
		if err = aggregate.ConfirmPayment(); err != nil {
			return err
		}
	}

	if err = aggregate.Approve(time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
