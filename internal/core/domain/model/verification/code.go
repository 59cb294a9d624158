package verification

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// qrTokenBytes is the entropy of a QR token before base64url encoding.
	qrTokenBytes = 32
	// otpDigits is the length of a numeric one-time code.
	otpDigits = 6
)

// Verification failures. ErrVerificationFailed is the parent kind; the
// specific sub-kinds wrap it so callers can match either level with
// errors.Is. All are retryable by re-presenting or re-issuing a code.
var (
	ErrVerificationFailed = errors.New("verification failed")
	// ErrCodeExpired means the code's validity window has passed.
	ErrCodeExpired = fmt.Errorf("%w: code expired", ErrVerificationFailed)
	// ErrCodeMismatch means the presented secret does not match.
	ErrCodeMismatch = fmt.Errorf("%w: code mismatch", ErrVerificationFailed)
	// ErrCodeConsumed means the code was already used once; codes are
	// strictly single-use and a replay is rejected, never re-accepted.
	ErrCodeConsumed = fmt.Errorf("%w: code already consumed", ErrVerificationFailed)
	// ErrCodeRevoked means the code was invalidated by a re-issue.
	ErrCodeRevoked = fmt.Errorf("%w: code revoked", ErrVerificationFailed)

	// ErrCodeIsNotConstructed is returned when using an improperly
	// initialized Code.
	ErrCodeIsNotConstructed = errors.New("Code must be created via NewCode constructor")
)

// Step identifies which physical handoff a code proves.
type Step string

const (
	// StepPickup proves the courier collected the goods from the seller.
	StepPickup Step = "pickup"
	// StepDelivery proves the courier handed the goods to the buyer.
	StepDelivery Step = "delivery"
)

// Validate checks that the step is one of the known values.
func (s Step) Validate() error {
	switch s {
	case StepPickup, StepDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("verification step",
			fmt.Errorf("%q is not a valid verification step", string(s)))
	}
}

// Encoding is the secret's wire form.
type Encoding string

const (
	// EncodingQR is an opaque high-entropy token rendered as a QR image.
	EncodingQR Encoding = "qr"
	// EncodingOTP is a short numeric code communicated verbally.
	EncodingOTP Encoding = "otp"
)

// Validate checks that the encoding is one of the known values.
func (e Encoding) Validate() error {
	switch e {
	case EncodingQR, EncodingOTP:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("code encoding",
			fmt.Errorf("%q is not a valid code encoding", string(e)))
	}
}

// Code is a single-use proof-of-possession secret bound to one delivery
// and one step. Only the SHA-256 hash of the secret is retained; the
// plaintext is returned exactly once from NewCode and is never
// recoverable afterwards.
//
// Invariants:
//   - Single-use: a consumed code rejects every later presentation
//   - Secret comparison is constant-time
//   - A revoked code (superseded by re-issue) never validates
type Code struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	step       Step
	encoding   Encoding

	// secretHash is hex(sha256(plaintext)); plaintext is never stored
	secretHash string

	issuedAt   time.Time
	expiresAt  time.Time
	consumedAt *time.Time
	revokedAt  *time.Time

	guard guard.ConstructorGuard
}

// NewCode issues a fresh verification code for a delivery step.
// It generates a cryptographically random secret in the requested
// encoding, stores only its hash, and returns the plaintext to the caller
// for one-time transmission (QR rendering or OTP delivery).
//
// Parameters:
//   - id: Unique identifier for the code record
//   - deliveryID: The delivery this code authorizes
//   - step: pickup or delivery
//   - encoding: qr (opaque token) or otp (short numeric code)
//   - ttl: Validity window from now (must be positive)
//   - now: Issuance time
//
// Returns:
//   - *Code: The stored representation (hash only)
//   - string: The plaintext secret, emitted exactly once
//   - error: Validation error or entropy-source failure
func NewCode(
	id kernel.UUID,
	deliveryID kernel.UUID,
	step Step,
	encoding Encoding,
	ttl time.Duration,
	now time.Time,
) (*Code, string, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate(), step.Validate(), encoding.Validate()); err != nil {
		return nil, "", err
	}
	if ttl <= 0 {
		return nil, "", errs.NewValueIsInvalidError("ttl must be positive")
	}

	plaintext, err := generateSecret(encoding)
	if err != nil {
		return nil, "", err
	}

	code := &Code{
		id:         id,
		deliveryID: deliveryID,
		step:       step,
		encoding:   encoding,
		secretHash: hashSecret(plaintext),
		issuedAt:   now,
		expiresAt:  now.Add(ttl),
		guard:      guard.NewConstructorGuard(),
	}

	return code, plaintext, nil
}

// RestoreCode reconstructs a Code aggregate from persistent storage.
func RestoreCode(
	id kernel.UUID,
	deliveryID kernel.UUID,
	step Step,
	encoding Encoding,
	secretHash string,
	issuedAt time.Time,
	expiresAt time.Time,
	consumedAt *time.Time,
	revokedAt *time.Time,
) (*Code, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate(), step.Validate(), encoding.Validate()); err != nil {
		return nil, err
	}
	if secretHash == "" {
		return nil, errs.NewValueIsRequiredError("secret hash")
	}

	return &Code{
		id:         id,
		deliveryID: deliveryID,
		step:       step,
		encoding:   encoding,
		secretHash: secretHash,
		issuedAt:   issuedAt,
		expiresAt:  expiresAt,
		consumedAt: consumedAt,
		revokedAt:  revokedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Code instance was properly constructed.
func (c *Code) Validate() error {
	if c == nil {
		return ErrCodeIsNotConstructed
	}
	return c.guard.Validate(ErrCodeIsNotConstructed)
}

// ID returns the code record's unique identifier.
func (c *Code) ID() kernel.UUID {
	return c.id
}

// DeliveryID returns the delivery this code authorizes.
func (c *Code) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Step returns which handoff the code proves.
func (c *Code) Step() Step {
	return c.step
}

// Encoding returns the secret's wire form.
func (c *Code) Encoding() Encoding {
	return c.encoding
}

// SecretHash returns the stored hex SHA-256 of the secret.
func (c *Code) SecretHash() string {
	return c.secretHash
}

// IssuedAt returns the issuance time.
func (c *Code) IssuedAt() time.Time {
	return c.issuedAt
}

// ExpiresAt returns the end of the validity window.
func (c *Code) ExpiresAt() time.Time {
	return c.expiresAt
}

// ConsumedAt returns when the code was successfully used, or nil.
func (c *Code) ConsumedAt() *time.Time {
	return c.consumedAt
}

// RevokedAt returns when the code was invalidated by re-issue, or nil.
func (c *Code) RevokedAt() *time.Time {
	return c.revokedAt
}

// IsActive reports whether the code can still be presented: not consumed,
// not revoked, and not past its expiry at the given time.
func (c *Code) IsActive(now time.Time) bool {
	return c.consumedAt == nil && c.revokedAt == nil && !now.After(c.expiresAt)
}

// Consume validates a presented secret and, on success, marks the code
// consumed so every later presentation fails.
//
// Failure order: an already-consumed code fails with ErrCodeConsumed and
// a revoked code with ErrCodeRevoked regardless of the presented value;
// then expiry is checked (ErrCodeExpired), then the secret itself
// (ErrCodeMismatch). The hash comparison is constant-time.
//
// Concurrency: duplicate submissions (e.g. a network retry re-sending
// the same code) are safe - only the first successful call consumes;
// the repository's conditional update serializes racing submitters.
func (c *Code) Consume(presented string, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.consumedAt != nil {
		return ErrCodeConsumed
	}
	if c.revokedAt != nil {
		return ErrCodeRevoked
	}
	if now.After(c.expiresAt) {
		return ErrCodeExpired
	}

	presentedHash := hashSecret(presented)
	if subtle.ConstantTimeCompare([]byte(presentedHash), []byte(c.secretHash)) != 1 {
		return ErrCodeMismatch
	}

	c.consumedAt = &now
	return nil
}

// Revoke invalidates the code without consuming it, used when a fresh
// code is re-issued for the same delivery and step.
func (c *Code) Revoke(now time.Time) {
	if c.revokedAt == nil && c.consumedAt == nil {
		c.revokedAt = &now
	}
}

// generateSecret produces a fresh random secret in the given encoding:
// a 32-byte base64url token for QR, a 6-digit numeric code for OTP.
func generateSecret(encoding Encoding) (string, error) {
	if encoding == EncodingQR {
		buf := make([]byte, qrTokenBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate QR token: %w", err)
		}
		return base64.RawURLEncoding.EncodeToString(buf), nil
	}

	limit := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

// hashSecret returns hex(sha256(secret)).
func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
