package verification_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueTestCode(
	t *testing.T, encoding verification.Encoding, ttl time.Duration, now time.Time,
) (*verification.Code, string) {
	t.Helper()

	code, plaintext, err := verification.NewCode(
		kernel.NewUUID(), kernel.NewUUID(),
		verification.StepPickup, encoding, ttl, now,
	)
	require.NoError(t, err)
	return code, plaintext
}

func TestNewCode(t *testing.T) {
	now := time.Now()

	t.Run("qr_token_is_opaque_and_hashed", func(t *testing.T) {
		code, plaintext, err := verification.NewCode(
			kernel.NewUUID(), kernel.NewUUID(),
			verification.StepPickup, verification.EncodingQR, time.Hour, now,
		)

		require.NoError(t, err)
		assert.NotEmpty(t, plaintext)
		assert.NotContains(t, code.SecretHash(), plaintext)
		assert.Len(t, code.SecretHash(), 64) // hex sha256
		assert.True(t, code.IsActive(now))
		assert.Equal(t, now.Add(time.Hour), code.ExpiresAt())
	})

	t.Run("otp_is_six_digits", func(t *testing.T) {
		_, plaintext := issueTestCode(t, verification.EncodingOTP, 10*time.Minute, now)

		require.Len(t, plaintext, 6)
		for _, r := range plaintext {
			assert.GreaterOrEqual(t, r, '0')
			assert.LessOrEqual(t, r, '9')
		}
	})

	t.Run("secrets_are_unique", func(t *testing.T) {
		_, a := issueTestCode(t, verification.EncodingQR, time.Hour, now)
		_, b := issueTestCode(t, verification.EncodingQR, time.Hour, now)
		assert.NotEqual(t, a, b)
	})

	t.Run("non_positive_ttl_fails", func(t *testing.T) {
		_, _, err := verification.NewCode(
			kernel.NewUUID(), kernel.NewUUID(),
			verification.StepPickup, verification.EncodingQR, 0, now,
		)
		require.Error(t, err)
	})

	t.Run("invalid_step_fails", func(t *testing.T) {
		_, _, err := verification.NewCode(
			kernel.NewUUID(), kernel.NewUUID(),
			verification.Step("handoff"), verification.EncodingQR, time.Hour, now,
		)
		require.Error(t, err)
	})
}

func TestCode_Consume(t *testing.T) {
	now := time.Now()

	t.Run("correct_secret_consumes_once", func(t *testing.T) {
		code, plaintext := issueTestCode(t, verification.EncodingQR, time.Hour, now)

		require.NoError(t, code.Consume(plaintext, now.Add(time.Minute)))
		require.NotNil(t, code.ConsumedAt())
		assert.False(t, code.IsActive(now.Add(time.Minute)))
	})

	t.Run("second_presentation_is_rejected", func(t *testing.T) {
		code, plaintext := issueTestCode(t, verification.EncodingQR, time.Hour, now)
		require.NoError(t, code.Consume(plaintext, now))

		err := code.Consume(plaintext, now.Add(time.Second))

		require.ErrorIs(t, err, verification.ErrCodeConsumed)
		require.ErrorIs(t, err, verification.ErrVerificationFailed)
	})

	t.Run("wrong_secret_is_mismatch", func(t *testing.T) {
		code, _ := issueTestCode(t, verification.EncodingOTP, 10*time.Minute, now)

		err := code.Consume("000000", now)

		require.ErrorIs(t, err, verification.ErrCodeMismatch)
		assert.Nil(t, code.ConsumedAt())
	})

	t.Run("mismatch_leaves_code_usable", func(t *testing.T) {
		code, plaintext := issueTestCode(t, verification.EncodingQR, time.Hour, now)

		require.ErrorIs(t, code.Consume("wrong", now), verification.ErrCodeMismatch)
		require.NoError(t, code.Consume(plaintext, now))
	})

	t.Run("presentation_after_expiry_fails", func(t *testing.T) {
		// A 60-minute QR presented after 61 minutes must report Expired.
		code, plaintext := issueTestCode(t, verification.EncodingQR, 60*time.Minute, now)

		err := code.Consume(plaintext, now.Add(61*time.Minute))

		require.ErrorIs(t, err, verification.ErrCodeExpired)
		assert.Nil(t, code.ConsumedAt())
	})

	t.Run("revoked_code_never_validates", func(t *testing.T) {
		code, plaintext := issueTestCode(t, verification.EncodingQR, time.Hour, now)
		code.Revoke(now)

		err := code.Consume(plaintext, now.Add(time.Second))

		require.ErrorIs(t, err, verification.ErrCodeRevoked)
	})
}

func TestCode_Revoke(t *testing.T) {
	now := time.Now()

	t.Run("revoking_consumed_code_is_noop", func(t *testing.T) {
		code, plaintext := issueTestCode(t, verification.EncodingQR, time.Hour, now)
		require.NoError(t, code.Consume(plaintext, now))

		code.Revoke(now.Add(time.Second))

		assert.Nil(t, code.RevokedAt())
	})
}

func TestRestoreCode(t *testing.T) {
	now := time.Now()

	t.Run("round_trips_and_validates_restored_secret", func(t *testing.T) {
		code, plaintext := issueTestCode(t, verification.EncodingQR, time.Hour, now)

		restored, err := verification.RestoreCode(
			code.ID(), code.DeliveryID(), code.Step(), code.Encoding(),
			code.SecretHash(), code.IssuedAt(), code.ExpiresAt(), nil, nil,
		)

		require.NoError(t, err)
		require.NoError(t, restored.Consume(plaintext, now))
	})

	t.Run("empty_hash_fails", func(t *testing.T) {
		_, err := verification.RestoreCode(
			kernel.NewUUID(), kernel.NewUUID(),
			verification.StepPickup, verification.EncodingQR,
			"", now, now.Add(time.Hour), nil, nil,
		)
		require.Error(t, err)
	})
}
