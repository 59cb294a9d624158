// Package ports defines repository and outbound interfaces for the
// dispatch domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingDispatch retrieves approved platform-delivery orders
	// that have no courier yet, oldest approval first. This is the queue
	// the dispatch sweep drains.
	GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error)

	// TryAssign persists a courier assignment with a conditional update
	// that only succeeds while the stored row is still unassigned.
	// Returns order.ErrAlreadyAssigned if a concurrent dispatcher won the
	// race; the aggregate's in-memory assignment must then be discarded.
	TryAssign(ctx context.Context, aggregate *order.Order) error

	// TryTransition persists the aggregate's state with a conditional
	// update that only succeeds while the stored row still holds the
	// status the transition started from. Returns
	// order.ErrInvalidTransition when a concurrent writer moved the order
	// first; the caller must re-read before deciding anything else.
	TryTransition(ctx context.Context, aggregate *order.Order, from order.Status) error
}
