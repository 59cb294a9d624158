package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
)

// EarningsRepository defines the persistence contract for earnings
// ledger entries.
type EarningsRepository interface {
	// Add persists a new earnings entry to storage.
	Add(ctx context.Context, aggregate *earnings.Entry) error

	// Update persists changes to an existing earnings entry.
	Update(ctx context.Context, aggregate *earnings.Entry) error

	// TryLink persists the entry's payout link with a conditional update
	// that only succeeds while the stored row is still available and
	// unlinked. Returns earnings.ErrPayoutConflict when a concurrent
	// payout request already froze the entry; the aggregate's in-memory
	// link must then be discarded.
	TryLink(ctx context.Context, aggregate *earnings.Entry) error

	// Get retrieves an earnings entry by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such entry exists.
	Get(ctx context.Context, id kernel.UUID) (*earnings.Entry, error)

	// GetAllReleasable retrieves pending entries whose holding window has
	// passed at the given time. This is the queue the release sweep drains.
	GetAllReleasable(ctx context.Context, now time.Time) ([]*earnings.Entry, error)

	// GetAllAvailableByPayee retrieves the payee's available, unlinked
	// entries - the batch a payout request freezes.
	GetAllAvailableByPayee(ctx context.Context, payeeID kernel.UUID) ([]*earnings.Entry, error)

	// GetAllByPayout retrieves the entries linked to a payout, used when
	// the payout resolves to withdraw or unlink them.
	GetAllByPayout(ctx context.Context, payoutID kernel.UUID) ([]*earnings.Entry, error)
}

// PayoutRepository defines the persistence contract for payout
// aggregates.
type PayoutRepository interface {
	// Add persists a new payout aggregate to storage.
	Add(ctx context.Context, aggregate *earnings.Payout) error

	// Update persists changes to an existing payout aggregate.
	Update(ctx context.Context, aggregate *earnings.Payout) error

	// Get retrieves a payout aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such payout exists.
	Get(ctx context.Context, id kernel.UUID) (*earnings.Payout, error)

	// GetOpenByPayee retrieves the payee's non-terminal payout, if any.
	// Returns errs.ObjectNotFoundError when the payee has no open payout;
	// a payee can hold at most one.
	GetOpenByPayee(ctx context.Context, payeeID kernel.UUID) (*earnings.Payout, error)
}
