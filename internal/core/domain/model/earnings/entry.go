package earnings

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Ledger failures. ErrPayoutConflict covers every double-counting hazard:
// linking an entry that already belongs to a payout, and requesting a
// payout while another one is still open for the same payee.
var (
	ErrEntryIsNotConstructed = errors.New("Entry must be created via a New*Entry constructor")
	ErrEntryNotReleasable    = errors.New("entry is not releasable")
	ErrEntryNotAvailable     = errors.New("entry is not available for payout")
	ErrPayoutConflict        = errors.New("entry is already linked to a payout")
)

// Beneficiary identifies which side of a completed delivery an earnings
// entry pays.
type Beneficiary string

const (
	// BeneficiarySeller is the selling party, paid order value minus commission.
	BeneficiarySeller Beneficiary = "seller"
	// BeneficiaryCourier is the courier, paid the delivery fee.
	BeneficiaryCourier Beneficiary = "courier"
)

// Validate checks that the beneficiary is one of the known values.
func (b Beneficiary) Validate() error {
	switch b {
	case BeneficiarySeller, BeneficiaryCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("beneficiary",
			fmt.Errorf("%q is not a valid beneficiary", string(b)))
	}
}

// EntryStatus is the settlement state of an earnings entry.
//
// Lifecycle: pending -> available -> withdrawn, with on_hold as a parking
// state for disputed entries. An available entry linked to a payout is
// frozen (still available, but owned by the payout) until the payout
// resolves: Completed moves it to withdrawn, Rejected/Failed unlink it
// back to plain available.
type EntryStatus string

const (
	// EntryPending is a fresh entry inside its dispute-holding window.
	EntryPending EntryStatus = "pending"
	// EntryAvailable is past the holding window and eligible for payout.
	EntryAvailable EntryStatus = "available"
	// EntryWithdrawn was disbursed through a completed payout. Terminal.
	EntryWithdrawn EntryStatus = "withdrawn"
	// EntryOnHold is parked pending dispute resolution.
	EntryOnHold EntryStatus = "on_hold"
)

// Validate checks that the entry status is one of the known values.
func (s EntryStatus) Validate() error {
	switch s {
	case EntryPending, EntryAvailable, EntryWithdrawn, EntryOnHold:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("entry status",
			fmt.Errorf("%q is not a valid entry status", string(s)))
	}
}

// Entry is one settlement line in the earnings ledger, created when an
// order reaches Delivered. Seller entries carry the commission split of
// the order amount; courier entries carry the delivery fee.
//
// Invariants:
//   - commission + net == gross exactly (decimal arithmetic, no drift)
//   - an entry belongs to at most one payout at any time
//   - amount fields never change after construction; only status,
//     available date, and the payout link move
type Entry struct {
	id          kernel.UUID
	beneficiary Beneficiary
	payeeID     kernel.UUID
	orderID     kernel.UUID
	deliveryID  *kernel.UUID

	grossAmount      kernel.Money
	rate             decimal.Decimal
	commissionAmount kernel.Money
	netAmount        kernel.Money

	status        EntryStatus
	availableDate time.Time
	payoutID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSellerEntry creates a pending seller entry for a delivered order.
// The commission split is computed here and never recomputed:
// commission = gross x rate, net = gross - commission.
//
// Parameters:
//   - id: Unique entry identifier
//   - payeeID: The seller being paid
//   - orderID: The delivered order
//   - grossAmount: The order's total amount
//   - rate: Platform commission rate as a fraction (e.g. 0.15)
//   - availableDate: End of the dispute-holding window
func NewSellerEntry(
	id kernel.UUID,
	payeeID kernel.UUID,
	orderID kernel.UUID,
	grossAmount kernel.Money,
	rate decimal.Decimal,
	availableDate time.Time,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), payeeID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, errs.NewValueIsOutOfRangeError("commission rate", rate.String(), "0", "1")
	}

	commission := grossAmount.MulRate(rate)
	net, err := grossAmount.Sub(commission)
	if err != nil {
		return nil, err
	}

	return &Entry{
		id:               id,
		beneficiary:      BeneficiarySeller,
		payeeID:          payeeID,
		orderID:          orderID,
		grossAmount:      grossAmount,
		rate:             rate,
		commissionAmount: commission,
		netAmount:        net,
		status:           EntryPending,
		availableDate:    availableDate,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// NewCourierEntry creates a pending courier entry for a completed
// delivery. The fee is computed by the fee schedule before this call;
// the entry stores it as both gross and net with no commission taken.
func NewCourierEntry(
	id kernel.UUID,
	payeeID kernel.UUID,
	orderID kernel.UUID,
	deliveryID kernel.UUID,
	fee kernel.Money,
	availableDate time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(), payeeID.Validate(), orderID.Validate(), deliveryID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		beneficiary:   BeneficiaryCourier,
		payeeID:       payeeID,
		orderID:       orderID,
		deliveryID:    &deliveryID,
		grossAmount:   fee,
		rate:          decimal.Zero,
		commissionAmount: kernel.ZeroMoney(),
		netAmount:     fee,
		status:        EntryPending,
		availableDate: availableDate,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreEntry reconstructs an Entry aggregate from persistent storage.
func RestoreEntry(
	id kernel.UUID,
	beneficiary Beneficiary,
	payeeID kernel.UUID,
	orderID kernel.UUID,
	deliveryID *kernel.UUID,
	grossAmount kernel.Money,
	rate decimal.Decimal,
	commissionAmount kernel.Money,
	netAmount kernel.Money,
	status EntryStatus,
	availableDate time.Time,
	payoutID *kernel.UUID,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(), beneficiary.Validate(), payeeID.Validate(),
		orderID.Validate(), status.Validate(),
	); err != nil {
		return nil, err
	}

	if !commissionAmount.Add(netAmount).IsEqual(grossAmount) {
		return nil, errs.NewValueIsInvalidError("commission and net must sum to gross")
	}

	return &Entry{
		id:               id,
		beneficiary:      beneficiary,
		payeeID:          payeeID,
		orderID:          orderID,
		deliveryID:       deliveryID,
		grossAmount:      grossAmount,
		rate:             rate,
		commissionAmount: commissionAmount,
		netAmount:        netAmount,
		status:           status,
		availableDate:    availableDate,
		payoutID:         payoutID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// Beneficiary returns who this entry pays.
func (e *Entry) Beneficiary() Beneficiary {
	return e.beneficiary
}

// PayeeID returns the party being paid.
func (e *Entry) PayeeID() kernel.UUID {
	return e.payeeID
}

// OrderID returns the source order.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// DeliveryID returns the source delivery for courier entries, or nil.
func (e *Entry) DeliveryID() *kernel.UUID {
	return e.deliveryID
}

// GrossAmount returns the pre-commission amount.
func (e *Entry) GrossAmount() kernel.Money {
	return e.grossAmount
}

// Rate returns the commission rate applied (zero for courier entries).
func (e *Entry) Rate() decimal.Decimal {
	return e.rate
}

// CommissionAmount returns the platform's cut.
func (e *Entry) CommissionAmount() kernel.Money {
	return e.commissionAmount
}

// NetAmount returns the amount owed to the payee.
func (e *Entry) NetAmount() kernel.Money {
	return e.netAmount
}

// Status returns the settlement state.
func (e *Entry) Status() EntryStatus {
	return e.status
}

// AvailableDate returns the end of the dispute-holding window.
func (e *Entry) AvailableDate() time.Time {
	return e.availableDate
}

// PayoutID returns the linked payout, or nil when unlinked.
func (e *Entry) PayoutID() *kernel.UUID {
	return e.payoutID
}

// IsReleasable reports whether the holding window has passed for a
// pending entry at the given time.
func (e *Entry) IsReleasable(now time.Time) bool {
	return e.status == EntryPending && !now.Before(e.availableDate)
}

// Release moves a pending entry past its holding window to available.
// Returns ErrEntryNotReleasable if the entry is not pending or the
// window has not passed.
func (e *Entry) Release(now time.Time) error {
	if !e.IsReleasable(now) {
		return fmt.Errorf("%w: status is %s, available from %s",
			ErrEntryNotReleasable, e.status, e.availableDate.Format(time.RFC3339))
	}
	e.status = EntryAvailable
	return nil
}

// Hold parks a pending entry pending dispute resolution.
func (e *Entry) Hold() error {
	if e.status != EntryPending {
		return fmt.Errorf("%w: status is %s", ErrEntryNotReleasable, e.status)
	}
	e.status = EntryOnHold
	return nil
}

// ReleaseHold returns an on-hold entry to pending; the holding window
// still applies before it becomes available.
func (e *Entry) ReleaseHold() error {
	if e.status != EntryOnHold {
		return fmt.Errorf("%w: status is %s", ErrEntryNotReleasable, e.status)
	}
	e.status = EntryPending
	return nil
}

// LinkToPayout freezes an available entry into a payout batch.
// Once linked the entry cannot be linked again until the payout resolves.
//
// Returns ErrPayoutConflict if already linked, ErrEntryNotAvailable if
// the entry is not in available status.
func (e *Entry) LinkToPayout(payoutID kernel.UUID) error {
	if err := payoutID.Validate(); err != nil {
		return err
	}
	if e.payoutID != nil {
		return ErrPayoutConflict
	}
	if e.status != EntryAvailable {
		return fmt.Errorf("%w: status is %s", ErrEntryNotAvailable, e.status)
	}

	e.payoutID = &payoutID
	return nil
}

// UnlinkFromPayout reverts a linked entry to plain available after its
// payout was rejected or failed, making it re-batchable.
func (e *Entry) UnlinkFromPayout() error {
	if e.payoutID == nil {
		return fmt.Errorf("%w: entry is not linked", ErrEntryNotAvailable)
	}
	if e.status != EntryAvailable {
		return fmt.Errorf("%w: status is %s", ErrEntryNotAvailable, e.status)
	}

	e.payoutID = nil
	return nil
}

// MarkWithdrawn finalizes a linked entry after its payout completed.
func (e *Entry) MarkWithdrawn() error {
	if e.payoutID == nil || e.status != EntryAvailable {
		return fmt.Errorf("%w: entry is not linked and available", ErrEntryNotAvailable)
	}
	e.status = EntryWithdrawn
	return nil
}
