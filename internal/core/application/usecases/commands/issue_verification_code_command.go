package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/verification"
	"dispatch/internal/pkg/guard"
)

var ErrIssueVerificationCodeCommandIsNotConstructed = errors.New(
	"IssueVerificationCodeCommand must be created via NewIssueVerificationCodeCommand constructor",
)

// IssueVerificationCodeCommand represents a request for a fresh
// single-use proof code for one handoff step of a delivery. Issuing a
// new code revokes any previously active code for the same step, so at
// most one code per (delivery, step) validates at a time.
type IssueVerificationCodeCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	step       verification.Step
	encoding   verification.Encoding

	guard guard.ConstructorGuard
}

// NewIssueVerificationCodeCommand creates a command to issue a proof code.
func NewIssueVerificationCodeCommand(
	deliveryID kernel.UUID, step verification.Step, encoding verification.Encoding,
) (IssueVerificationCodeCommand, error) {
	if err := errors.Join(deliveryID.Validate(), step.Validate(), encoding.Validate()); err != nil {
		return IssueVerificationCodeCommand{}, err
	}

	return IssueVerificationCodeCommand{
		deliveryID: deliveryID,
		step:       step,
		encoding:   encoding,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueVerificationCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueVerificationCodeCommandIsNotConstructed)
}

// DeliveryID returns the delivery the code authorizes.
func (c IssueVerificationCodeCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Step returns the handoff step being proven.
func (c IssueVerificationCodeCommand) Step() verification.Step {
	return c.step
}

// Encoding returns the requested secret form.
func (c IssueVerificationCodeCommand) Encoding() verification.Encoding {
	return c.encoding
}
