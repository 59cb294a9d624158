package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRequestPayoutCommandIsNotConstructed = errors.New(
		"RequestPayoutCommand must be created via NewRequestPayoutCommand constructor",
	)
	ErrNothingToPayOut = errors.New("payee has no available earnings")
)

// RequestPayoutCommand represents a payee asking to withdraw their
// available earnings. The request batches every available entry into one
// pending payout awaiting operator review.
type RequestPayoutCommand struct { //nolint:recvcheck //using for validation
	payoutID    kernel.UUID
	payeeID     kernel.UUID
	beneficiary earnings.Beneficiary
	destination string

	guard guard.ConstructorGuard
}

// NewRequestPayoutCommand creates a command to request a payout.
// Automatically generates the payout identifier.
func NewRequestPayoutCommand(
	payeeID kernel.UUID, beneficiary earnings.Beneficiary, destination string,
) (RequestPayoutCommand, error) {
	if err := errors.Join(payeeID.Validate(), beneficiary.Validate()); err != nil {
		return RequestPayoutCommand{}, err
	}

	return RequestPayoutCommand{
		payoutID:    kernel.NewUUID(),
		payeeID:     payeeID,
		beneficiary: beneficiary,
		destination: destination,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestPayoutCommand) Validate() error {
	return c.guard.Validate(ErrRequestPayoutCommandIsNotConstructed)
}

// PayoutID returns the generated payout identifier.
func (c RequestPayoutCommand) PayoutID() kernel.UUID {
	return c.payoutID
}

// PayeeID returns the requesting payee.
func (c RequestPayoutCommand) PayeeID() kernel.UUID {
	return c.payeeID
}

// Beneficiary returns the payee's role.
func (c RequestPayoutCommand) Beneficiary() earnings.Beneficiary {
	return c.beneficiary
}

// Destination returns the payment channel account.
func (c RequestPayoutCommand) Destination() string {
	return c.destination
}
