package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents the buyer-side handoff: the buyer's
// code is presented, and a successful verification completes the order,
// frees the courier's job slot, and writes the settlement entries.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	presentedCode string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to verify a delivery handoff.
func NewConfirmDeliveryCommand(orderID kernel.UUID, presentedCode string) (ConfirmDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	if presentedCode == "" {
		return ConfirmDeliveryCommand{}, ErrPresentedCodeIsRequired
	}

	return ConfirmDeliveryCommand{
		orderID:       orderID,
		presentedCode: presentedCode,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c ConfirmDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PresentedCode returns the secret presented at the handoff.
func (c ConfirmDeliveryCommand) PresentedCode() string {
	return c.presentedCode
}
