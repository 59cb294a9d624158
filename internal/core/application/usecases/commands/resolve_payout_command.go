package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrResolvePayoutCommandIsNotConstructed = errors.New(
	"ResolvePayoutCommand must be created via NewResolvePayoutCommand constructor",
)

// PayoutAction is one step of the payout review and disbursement flow.
type PayoutAction string

const (
	// PayoutActionApprove passes a pending payout through review.
	PayoutActionApprove PayoutAction = "approve"
	// PayoutActionReject declines a pending payout; its entries unfreeze.
	PayoutActionReject PayoutAction = "reject"
	// PayoutActionProcess hands an approved payout to the payment channel.
	PayoutActionProcess PayoutAction = "process"
	// PayoutActionComplete records a successful disbursement; its entries
	// are withdrawn.
	PayoutActionComplete PayoutAction = "complete"
	// PayoutActionFail records a disbursement error; its entries unfreeze.
	PayoutActionFail PayoutAction = "fail"
)

// Validate checks that the action is one of the known values.
func (a PayoutAction) Validate() error {
	switch a {
	case PayoutActionApprove, PayoutActionReject, PayoutActionProcess,
		PayoutActionComplete, PayoutActionFail:
		return nil
	default:
		return fmt.Errorf("%q is not a valid payout action", string(a))
	}
}

// ResolvePayoutCommand advances a payout through its review and
// disbursement flow: approve, reject, process, complete, or fail.
type ResolvePayoutCommand struct { //nolint:recvcheck //using for validation
	payoutID   kernel.UUID
	action     PayoutAction
	reviewerID kernel.UUID
	note       string

	guard guard.ConstructorGuard
}

// NewResolvePayoutCommand creates a command to advance a payout.
// The reviewer identifies the operator (or system actor) driving the
// step; the note carries a rejection or failure reason.
func NewResolvePayoutCommand(
	payoutID kernel.UUID, action PayoutAction, reviewerID kernel.UUID, note string,
) (ResolvePayoutCommand, error) {
	if err := errors.Join(payoutID.Validate(), action.Validate(), reviewerID.Validate()); err != nil {
		return ResolvePayoutCommand{}, err
	}

	return ResolvePayoutCommand{
		payoutID:   payoutID,
		action:     action,
		reviewerID: reviewerID,
		note:       note,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolvePayoutCommand) Validate() error {
	return c.guard.Validate(ErrResolvePayoutCommandIsNotConstructed)
}

// PayoutID returns the payout being advanced.
func (c ResolvePayoutCommand) PayoutID() kernel.UUID {
	return c.payoutID
}

// Action returns the requested step.
func (c ResolvePayoutCommand) Action() PayoutAction {
	return c.action
}

// ReviewerID returns the acting operator.
func (c ResolvePayoutCommand) ReviewerID() kernel.UUID {
	return c.reviewerID
}

// Note returns the rejection or failure reason.
func (c ResolvePayoutCommand) Note() string {
	return c.note
}
