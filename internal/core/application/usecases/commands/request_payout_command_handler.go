package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/pkg/errs"
)

// RequestPayoutCommandHandler handles payout requests.
//
// A payee can hold at most one open payout: a second request while one
// is pending, approved, or processing fails with
// earnings.ErrPayoutConflict. Every available entry of the payee is
// frozen into the new payout, and the payout amount is the exact sum of
// their net amounts.
type RequestPayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
}

// NewRequestPayoutCommandHandler creates a handler for payout requests.
func NewRequestPayoutCommandHandler(uowFactory PayoutUoWFactory) RequestPayoutCommandHandler {
	return RequestPayoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payout request.
// Returns earnings.ErrPayoutConflict if the payee already has an open
// payout, ErrNothingToPayOut if no entries are available.
func (h RequestPayoutCommandHandler) Handle(ctx context.Context, cmd RequestPayoutCommand) error {
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

	payoutRepo := uow.PayoutRepository()

	_, err := payoutRepo.GetOpenByPayee(ctx, cmd.PayeeID())
	if err == nil {
		return earnings.ErrPayoutConflict
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	earningsRepo := uow.EarningsRepository()

	available, err := earningsRepo.GetAllAvailableByPayee(ctx, cmd.PayeeID())
	if err != nil {
		return err
	}
	if len(available) == 0 {
		return ErrNothingToPayOut
	}

	payout, err := earnings.NewPayout(
		cmd.PayoutID(), cmd.PayeeID(), cmd.Beneficiary(),
		available, cmd.Destination(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = payoutRepo.Add(ctx, payout); err != nil {
		return err
	}

	// Each link is persisted conditionally so two requests racing past
	// the open-payout check cannot freeze the same entry into both
	// payouts; the loser aborts and the money is counted once.
	for _, entry := range available {
		if err = entry.LinkToPayout(payout.ID()); err != nil {
			return err
		}

		if err = earningsRepo.TryLink(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
