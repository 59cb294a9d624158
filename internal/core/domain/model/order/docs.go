// Package order contains the Order aggregate and its lifecycle state
// machine: Placed, Paid, Approved, Assigned, InTransit, Delivered, with
// Cancelled reachable from any non-terminal state.
//
// All transition methods are total. An unmet precondition returns a typed
// failure (ErrInvalidTransition, ErrAlreadyAssigned, ErrPaymentNotConfirmed)
// and leaves the aggregate unchanged, so callers treat races and stale
// requests as normal control flow rather than exceptions.
package order
