package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/ports"
)

// ResolvePayoutCommandHandler advances payouts through review and
// disbursement.
//
// Terminal actions settle the frozen entries in the same transaction:
// Complete withdraws them for good, Reject and Fail unlink them so the
// money becomes re-batchable in a later payout. The payee is notified
// after the transaction commits.
type ResolvePayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
	notifier   ports.Notifier
}

// NewResolvePayoutCommandHandler creates a handler for payout resolution.
func NewResolvePayoutCommandHandler(
	uowFactory PayoutUoWFactory, notifier ports.Notifier,
) ResolvePayoutCommandHandler {
	return ResolvePayoutCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the resolution command.
// Returns earnings.ErrInvalidPayoutTransition when the action does not
// fit the payout's current status.
func (h ResolvePayoutCommandHandler) Handle(ctx context.Context, cmd ResolvePayoutCommand) error {
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

	payout, err := payoutRepo.Get(ctx, cmd.PayoutID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if err = h.applyAction(payout, cmd, now); err != nil {
		return err
	}

	if err = payoutRepo.Update(ctx, payout); err != nil {
		return err
	}

	if !payout.IsOpen() {
		if err = h.settleEntries(ctx, uow, payout); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !payout.IsOpen() {
		h.notifier.PayoutResolved(ctx, payout.ID(), payout.PayeeID(), string(payout.Status()))
	}

	return nil
}

func (h ResolvePayoutCommandHandler) applyAction(
	payout *earnings.Payout, cmd ResolvePayoutCommand, now time.Time,
) error {
	switch cmd.Action() {
	case PayoutActionApprove:
		return payout.Approve(cmd.ReviewerID())
	case PayoutActionReject:
		return payout.Reject(cmd.ReviewerID(), cmd.Note(), now)
	case PayoutActionProcess:
		return payout.StartProcessing()
	case PayoutActionComplete:
		return payout.Complete(now)
	case PayoutActionFail:
		return payout.Fail(cmd.Note(), now)
	default:
		return cmd.Action().Validate()
	}
}

// settleEntries finalizes the frozen entries of a terminal payout.
func (h ResolvePayoutCommandHandler) settleEntries(
	ctx context.Context, uow PayoutUoW, payout *earnings.Payout,
) error {
	earningsRepo := uow.EarningsRepository()

	entries, err := earningsRepo.GetAllByPayout(ctx, payout.ID())
	if err != nil {
		return err
	}

	completed := payout.Status() == earnings.PayoutCompleted

	// The disbursed amount must still equal what the frozen entries owe;
	// a drifted ledger aborts the completion instead of paying it out.
	if completed {
		if err = payout.VerifyAmount(entries); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if completed {
			err = entry.MarkWithdrawn()
		} else {
			err = entry.UnlinkFromPayout()
		}
		if err != nil {
			return err
		}

		if err = earningsRepo.Update(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}
