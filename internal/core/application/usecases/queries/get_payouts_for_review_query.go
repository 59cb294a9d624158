package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPayoutsForReviewQueryIsNotConstructed = errors.New(
	"GetPayoutsForReviewQuery must be created via NewGetPayoutsForReviewQuery constructor",
)

// GetPayoutsForReviewQuery retrieves payouts awaiting operator review,
// oldest request first.
type GetPayoutsForReviewQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPayoutsForReviewQuery creates a query for the review queue.
func NewGetPayoutsForReviewQuery() GetPayoutsForReviewQuery {
	return GetPayoutsForReviewQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPayoutsForReviewQuery) Validate() error {
	return q.guard.Validate(ErrGetPayoutsForReviewQueryIsNotConstructed)
}

// GetPayoutsForReviewQueryResponse is one payout awaiting review.
type GetPayoutsForReviewQueryResponse struct {
	PayoutID    kernel.UUID
	PayeeID     kernel.UUID
	Beneficiary earnings.Beneficiary
	Amount      kernel.Money
	Destination string
	RequestedAt time.Time
}
