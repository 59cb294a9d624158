package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrReleaseEarningsCommandIsNotConstructed = errors.New(
	"ReleaseEarningsCommand must be created via NewReleaseEarningsCommand constructor",
)

// ReleaseEarningsCommand triggers one release sweep over the earnings
// ledger: every pending entry whose holding window has passed becomes
// available for payout.
type ReleaseEarningsCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseEarningsCommand creates a command to trigger a release sweep.
func NewReleaseEarningsCommand() ReleaseEarningsCommand {
	return ReleaseEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReleaseEarningsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseEarningsCommandIsNotConstructed)
}
