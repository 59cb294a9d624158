package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/verification"
	"dispatch/internal/pkg/errs"
)

// IssueVerificationCodeCommandHandler issues single-use proof codes.
//
// The handler checks that the delivery exists and is still active,
// revokes the previously issued code for the step (if any), generates a
// fresh secret, and returns the plaintext exactly once. Only the hash is
// persisted; a lost secret can only be replaced by re-issuing.
type IssueVerificationCodeCommandHandler struct {
	uowFactory CodeUoWFactory
	qrTTL      time.Duration
	otpTTL     time.Duration
}

// NewIssueVerificationCodeCommandHandler creates a handler for code issuance.
//
// Parameters:
//   - uowFactory: Transaction factory spanning deliveries and codes
//   - qrTTL: Validity window for QR tokens
//   - otpTTL: Validity window for numeric OTPs
func NewIssueVerificationCodeCommandHandler(
	uowFactory CodeUoWFactory, qrTTL, otpTTL time.Duration,
) IssueVerificationCodeCommandHandler {
	return IssueVerificationCodeCommandHandler{
		uowFactory: uowFactory,
		qrTTL:      qrTTL,
		otpTTL:     otpTTL,
	}
}

// Handle processes the issuance command and returns the plaintext secret
// for one-time transmission to the presenting party.
func (h IssueVerificationCodeCommandHandler) Handle(
	ctx context.Context, cmd IssueVerificationCodeCommand,
) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return "", err
	}
	if record.Status().IsTerminal() {
		return "", errs.NewValueIsInvalidError("delivery is already closed")
	}

	codeRepo := uow.VerificationCodeRepository()
	now := time.Now().UTC()

	previous, err := codeRepo.GetActiveByDeliveryAndStep(ctx, cmd.DeliveryID(), cmd.Step())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return "", err
	}
	if previous != nil {
		previous.Revoke(now)
		if err = codeRepo.Update(ctx, previous); err != nil {
			return "", err
		}
	}

	ttl := h.qrTTL
	method := delivery.MethodQR
	if cmd.Encoding() == verification.EncodingOTP {
		ttl = h.otpTTL
		method = delivery.MethodOTP
	}

	code, plaintext, err := verification.NewCode(
		kernel.NewUUID(), cmd.DeliveryID(), cmd.Step(), cmd.Encoding(), ttl, now,
	)
	if err != nil {
		return "", err
	}

	if err = codeRepo.Add(ctx, code); err != nil {
		return "", err
	}

	// The delivery records the encoding its handoffs are actually proven
	// with, so a switch to OTP (or back) shows up on the audit trail.
	if record.VerificationMethod() != method {
		if err = record.ChangeVerificationMethod(method); err != nil {
			return "", err
		}

		if err = uow.DeliveryRepository().Update(ctx, record); err != nil {
			return "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return plaintext, nil
}
