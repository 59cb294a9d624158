package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPayeeEarningsQueryIsNotConstructed = errors.New(
	"GetPayeeEarningsQuery must be created via NewGetPayeeEarningsQuery constructor",
)

// GetPayeeEarningsQuery retrieves a payee's earnings ledger: every
// entry with its settlement state, plus running totals per state. This
// backs the "my earnings" screen for sellers and couriers.
type GetPayeeEarningsQuery struct { //nolint:recvcheck //using for validation
	payeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPayeeEarningsQuery creates a query for a payee's ledger.
func NewGetPayeeEarningsQuery(payeeID kernel.UUID) (GetPayeeEarningsQuery, error) {
	if err := payeeID.Validate(); err != nil {
		return GetPayeeEarningsQuery{}, err
	}

	return GetPayeeEarningsQuery{
		payeeID: payeeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPayeeEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetPayeeEarningsQueryIsNotConstructed)
}

// PayeeID returns the payee whose ledger is requested.
func (q GetPayeeEarningsQuery) PayeeID() kernel.UUID {
	return q.payeeID
}

// PayeeEarningsItem is one ledger entry row.
type PayeeEarningsItem struct {
	EntryID       kernel.UUID
	OrderID       kernel.UUID
	NetAmount     kernel.Money
	Status        earnings.EntryStatus
	AvailableDate time.Time
}

// GetPayeeEarningsQueryResponse is the payee's ledger with totals.
type GetPayeeEarningsQueryResponse struct {
	Entries        []PayeeEarningsItem
	PendingTotal   kernel.Money
	AvailableTotal kernel.Money
	WithdrawnTotal kernel.Money
}
