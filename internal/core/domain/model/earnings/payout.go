package earnings

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Payout failures.
var (
	ErrPayoutIsNotConstructed   = errors.New("Payout must be created via NewPayout constructor")
	ErrInvalidPayoutTransition  = errors.New("invalid payout status transition")
	ErrPayoutHasNoEntries       = errors.New("payout must reference at least one entry")
	ErrPayoutAmountMismatch     = errors.New("payout amount must equal the sum of its entries")
)

// PayoutStatus is the disbursement state of a payout request.
//
// Lifecycle: Pending -> Approved -> Processing -> Completed, with
// Rejected (from Pending) and Failed (from Processing) as the unhappy
// exits. Completed, Rejected, and Failed are terminal; everything else
// is open, and a payee can have at most one open payout at a time.
type PayoutStatus string

const (
	// PayoutPending awaits operator review.
	PayoutPending PayoutStatus = "pending"
	// PayoutApproved passed review and awaits disbursement.
	PayoutApproved PayoutStatus = "approved"
	// PayoutProcessing is being disbursed through the payment channel.
	PayoutProcessing PayoutStatus = "processing"
	// PayoutCompleted was disbursed. Terminal.
	PayoutCompleted PayoutStatus = "completed"
	// PayoutRejected was declined at review. Terminal.
	PayoutRejected PayoutStatus = "rejected"
	// PayoutFailed errored during disbursement. Terminal.
	PayoutFailed PayoutStatus = "failed"
)

// Validate checks that the payout status is one of the known values.
func (s PayoutStatus) Validate() error {
	switch s {
	case PayoutPending, PayoutApproved, PayoutProcessing,
		PayoutCompleted, PayoutRejected, PayoutFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payout status",
			fmt.Errorf("%q is not a valid payout status", string(s)))
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutCompleted || s == PayoutRejected || s == PayoutFailed
}

// Payout is a request to disburse a batch of available earnings entries
// to a single payee. The amount is fixed at creation as the exact sum of
// the linked entries' net amounts and never changes afterwards.
type Payout struct {
	id          kernel.UUID
	payeeID     kernel.UUID
	beneficiary Beneficiary
	amount      kernel.Money
	entryIDs    []kernel.UUID
	destination string

	status      PayoutStatus
	requestedAt time.Time
	resolvedAt  *time.Time
	reviewedBy  *kernel.UUID
	note        string

	guard guard.ConstructorGuard
}

// NewPayout creates a pending payout over a batch of available entries.
// The caller links the entries to the payout separately (LinkToPayout on
// each); this constructor verifies the batch is non-empty and every
// entry belongs to the payee, and fixes the disbursed amount as the
// exact sum of the entry net amounts.
//
// Parameters:
//   - id: Unique payout identifier
//   - payeeID: The party being paid
//   - beneficiary: seller or courier
//   - entries: The available entries being batched
//   - destination: Payment channel account (bank account, wallet)
//   - now: Request time
func NewPayout(
	id kernel.UUID,
	payeeID kernel.UUID,
	beneficiary Beneficiary,
	entries []*Entry,
	destination string,
	now time.Time,
) (*Payout, error) {
	if err := errors.Join(id.Validate(), payeeID.Validate(), beneficiary.Validate()); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrPayoutHasNoEntries
	}
	if destination == "" {
		return nil, errs.NewValueIsRequiredError("payout destination")
	}

	amount := kernel.ZeroMoney()
	entryIDs := make([]kernel.UUID, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if !entry.PayeeID().IsEqual(payeeID) {
			return nil, errs.NewValueIsInvalidError("entry does not belong to the payee")
		}
		amount = amount.Add(entry.NetAmount())
		entryIDs = append(entryIDs, entry.ID())
	}

	return &Payout{
		id:          id,
		payeeID:     payeeID,
		beneficiary: beneficiary,
		amount:      amount,
		entryIDs:    entryIDs,
		destination: destination,
		status:      PayoutPending,
		requestedAt: now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestorePayout reconstructs a Payout aggregate from persistent storage.
func RestorePayout(
	id kernel.UUID,
	payeeID kernel.UUID,
	beneficiary Beneficiary,
	amount kernel.Money,
	entryIDs []kernel.UUID,
	destination string,
	status PayoutStatus,
	requestedAt time.Time,
	resolvedAt *time.Time,
	reviewedBy *kernel.UUID,
	note string,
) (*Payout, error) {
	if err := errors.Join(
		id.Validate(), payeeID.Validate(), beneficiary.Validate(), status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(entryIDs) == 0 {
		return nil, ErrPayoutHasNoEntries
	}

	return &Payout{
		id:          id,
		payeeID:     payeeID,
		beneficiary: beneficiary,
		amount:      amount,
		entryIDs:    entryIDs,
		destination: destination,
		status:      status,
		requestedAt: requestedAt,
		resolvedAt:  resolvedAt,
		reviewedBy:  reviewedBy,
		note:        note,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Payout instance was properly constructed.
func (p *Payout) Validate() error {
	if p == nil {
		return ErrPayoutIsNotConstructed
	}
	return p.guard.Validate(ErrPayoutIsNotConstructed)
}

// ID returns the payout's unique identifier.
func (p *Payout) ID() kernel.UUID {
	return p.id
}

// PayeeID returns the party being paid.
func (p *Payout) PayeeID() kernel.UUID {
	return p.payeeID
}

// Beneficiary returns the payee's role.
func (p *Payout) Beneficiary() Beneficiary {
	return p.beneficiary
}

// Amount returns the disbursed amount, fixed at creation.
func (p *Payout) Amount() kernel.Money {
	return p.amount
}

// EntryIDs returns the batched entry identifiers.
func (p *Payout) EntryIDs() []kernel.UUID {
	return p.entryIDs
}

// Destination returns the payment channel account.
func (p *Payout) Destination() string {
	return p.destination
}

// Status returns the disbursement state.
func (p *Payout) Status() PayoutStatus {
	return p.status
}

// RequestedAt returns when the payout was requested.
func (p *Payout) RequestedAt() time.Time {
	return p.requestedAt
}

// ResolvedAt returns when the payout reached a terminal state, or nil.
func (p *Payout) ResolvedAt() *time.Time {
	return p.resolvedAt
}

// ReviewedBy returns the operator who reviewed the payout, or nil.
func (p *Payout) ReviewedBy() *kernel.UUID {
	return p.reviewedBy
}

// Note returns the review or failure note.
func (p *Payout) Note() string {
	return p.note
}

// IsOpen reports whether the payout is still in flight. A payee with an
// open payout cannot request another one.
func (p *Payout) IsOpen() bool {
	return !p.status.IsTerminal()
}

// Approve passes the payout through operator review.
// Only a pending payout can be approved.
func (p *Payout) Approve(reviewerID kernel.UUID) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}
	if p.status != PayoutPending {
		return p.invalidTransition(PayoutApproved)
	}

	p.status = PayoutApproved
	p.reviewedBy = &reviewerID
	return nil
}

// Reject declines a pending payout at review. Terminal; the linked
// entries must be unlinked by the caller so they become re-batchable.
func (p *Payout) Reject(reviewerID kernel.UUID, reason string, now time.Time) error {
	if err := reviewerID.Validate(); err != nil {
		return err
	}
	if p.status != PayoutPending {
		return p.invalidTransition(PayoutRejected)
	}

	p.status = PayoutRejected
	p.reviewedBy = &reviewerID
	p.note = reason
	p.resolvedAt = &now
	return nil
}

// StartProcessing hands an approved payout to the payment channel.
func (p *Payout) StartProcessing() error {
	if p.status != PayoutApproved {
		return p.invalidTransition(PayoutProcessing)
	}
	p.status = PayoutProcessing
	return nil
}

// Complete records a successful disbursement. Terminal; the linked
// entries must be marked withdrawn by the caller.
func (p *Payout) Complete(now time.Time) error {
	if p.status != PayoutProcessing {
		return p.invalidTransition(PayoutCompleted)
	}
	p.status = PayoutCompleted
	p.resolvedAt = &now
	return nil
}

// Fail records a disbursement error. Terminal; the linked entries must
// be unlinked by the caller so they become re-batchable.
func (p *Payout) Fail(reason string, now time.Time) error {
	if p.status != PayoutProcessing {
		return p.invalidTransition(PayoutFailed)
	}
	p.status = PayoutFailed
	p.note = reason
	p.resolvedAt = &now
	return nil
}

// VerifyAmount cross-checks the fixed disbursed amount against the
// entries currently linked to the payout. A mismatch means the ledger
// drifted between request and disbursement; the payout must not settle.
func (p *Payout) VerifyAmount(entries []*Entry) error {
	sum := kernel.ZeroMoney()
	for _, entry := range entries {
		sum = sum.Add(entry.NetAmount())
	}
	if !sum.IsEqual(p.amount) {
		return fmt.Errorf("%w: entries sum to %s, payout amount is %s",
			ErrPayoutAmountMismatch, sum, p.amount)
	}
	return nil
}

func (p *Payout) invalidTransition(to PayoutStatus) error {
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidPayoutTransition, p.status, to)
}
