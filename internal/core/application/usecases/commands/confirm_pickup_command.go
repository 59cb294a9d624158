package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrConfirmPickupCommandIsNotConstructed = errors.New(
		"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
	)
	ErrPresentedCodeIsRequired = errors.New("presented code is required")
)

// ConfirmPickupCommand represents the seller-side handoff: the courier
// presents the pickup code, and a successful verification moves the
// order and its delivery into transit.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	presentedCode string

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a command to verify a pickup handoff.
func NewConfirmPickupCommand(orderID kernel.UUID, presentedCode string) (ConfirmPickupCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmPickupCommand{}, err
	}
	if presentedCode == "" {
		return ConfirmPickupCommand{}, ErrPresentedCodeIsRequired
	}

	return ConfirmPickupCommand{
		orderID:       orderID,
		presentedCode: presentedCode,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c ConfirmPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PresentedCode returns the secret presented at the handoff.
func (c ConfirmPickupCommand) PresentedCode() string {
	return c.presentedCode
}
