package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignCouriersCommandIsNotConstructed = errors.New(
	"AssignCouriersCommand must be created via NewAssignCouriersCommand constructor",
)

// AssignCouriersCommand triggers one dispatch sweep: every approved
// platform-delivery order without a courier is matched against the
// currently available couriers and assigned where possible. Orders that
// cannot be matched stay in the queue for the next sweep.
//
// Example:
//
//	cmd := NewAssignCouriersCommand()
//	err := handler.Handle(ctx, cmd)
type AssignCouriersCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignCouriersCommand creates a command to trigger a dispatch sweep.
func NewAssignCouriersCommand() AssignCouriersCommand {
	return AssignCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AssignCouriersCommand) Validate() error {
	return c.guard.Validate(ErrAssignCouriersCommandIsNotConstructed)
}
