package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/verification"
)

// VerificationCodeRepository defines the persistence contract for
// single-use verification codes.
type VerificationCodeRepository interface {
	// Add persists a new verification code to storage.
	Add(ctx context.Context, aggregate *verification.Code) error

	// Update persists changes to an existing verification code, using a
	// conditional update on the consumed/revoked markers so that racing
	// submitters cannot both consume the same code.
	Update(ctx context.Context, aggregate *verification.Code) error

	// GetActiveByDeliveryAndStep retrieves the unconsumed, unrevoked code
	// for a delivery step. Returns errs.ObjectNotFoundError when none
	// exists; at most one is active per (delivery, step) at a time.
	GetActiveByDeliveryAndStep(
		ctx context.Context, deliveryID kernel.UUID, step verification.Step,
	) (*verification.Code, error)
}
