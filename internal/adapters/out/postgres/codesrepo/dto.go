// Package codesrepo provides data transfer objects and mapping functions
// for verification code persistence. Only the SHA-256 hash of a secret is
// ever stored; the plaintext never reaches the database.
package codesrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/verification"

	"github.com/google/uuid"
)

// CodeDTO represents the database structure for persisting verification
// codes. The composite index on (delivery_id, step) serves the active
// code lookup on every pickup and handoff confirmation.
type CodeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index:idx_codes_delivery_step"`
	Step       string    `gorm:"index:idx_codes_delivery_step"`
	Encoding   string
	SecretHash string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	RevokedAt  *time.Time
}

// TableName specifies the database table name for verification codes.
func (CodeDTO) TableName() string {
	return "verification_codes"
}

// fromDomain converts a verification code aggregate to its database representation.
func fromDomain(aggregate *verification.Code) CodeDTO {
	return CodeDTO{
		ID:         aggregate.ID().Bytes(),
		DeliveryID: aggregate.DeliveryID().Bytes(),
		Step:       string(aggregate.Step()),
		Encoding:   string(aggregate.Encoding()),
		SecretHash: aggregate.SecretHash(),
		IssuedAt:   aggregate.IssuedAt(),
		ExpiresAt:  aggregate.ExpiresAt(),
		ConsumedAt: aggregate.ConsumedAt(),
		RevokedAt:  aggregate.RevokedAt(),
	}
}

// toDomain converts a database row back to a verification code via RestoreCode.
func toDomain(dto CodeDTO) (*verification.Code, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	return verification.RestoreCode(
		id,
		deliveryID,
		verification.Step(dto.Step),
		verification.Encoding(dto.Encoding),
		dto.SecretHash,
		dto.IssuedAt,
		dto.ExpiresAt,
		dto.ConsumedAt,
		dto.RevokedAt,
	)
}
