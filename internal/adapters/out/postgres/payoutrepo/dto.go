// Package payoutrepo provides data transfer objects and mapping
// functions for payout persistence. A payout's entry batch is not stored
// on the payout row; it is reconstructed from the payout_id references on
// the earnings entries.
package payoutrepo

import (
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PayoutDTO represents the database structure for persisting payout
// aggregates.
type PayoutDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayeeID     uuid.UUID `gorm:"type:uuid;index"`
	Beneficiary string
	Amount      kernel.Money `gorm:"type:decimal(19,2)"`
	Destination string
	Status      string `gorm:"index"`
	RequestedAt time.Time
	ResolvedAt  *time.Time
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	Note        string
}

// TableName specifies the database table name for payout entities.
func (PayoutDTO) TableName() string {
	return "payouts"
}

// fromDomain converts a payout aggregate to its database representation.
func fromDomain(aggregate *earnings.Payout) PayoutDTO {
	var reviewedBy *uuid.UUID
	if id := aggregate.ReviewedBy(); id != nil {
		raw := id.Bytes()
		reviewedBy = &raw
	}

	return PayoutDTO{
		ID:          aggregate.ID().Bytes(),
		PayeeID:     aggregate.PayeeID().Bytes(),
		Beneficiary: string(aggregate.Beneficiary()),
		Amount:      aggregate.Amount(),
		Destination: aggregate.Destination(),
		Status:      string(aggregate.Status()),
		RequestedAt: aggregate.RequestedAt(),
		ResolvedAt:  aggregate.ResolvedAt(),
		ReviewedBy:  reviewedBy,
		Note:        aggregate.Note(),
	}
}

// toDomain converts a database row plus the linked entry IDs back to a
// payout aggregate via RestorePayout.
func toDomain(dto PayoutDTO, entryIDs []kernel.UUID) (*earnings.Payout, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	payeeID, err := kernel.UUIDFromBytes(dto.PayeeID[:])
	if err != nil {
		return nil, err
	}

	var reviewedBy *kernel.UUID
	if dto.ReviewedBy != nil {
		rID, reviewerErr := kernel.UUIDFromBytes((*dto.ReviewedBy)[:])
		if reviewerErr != nil {
			return nil, reviewerErr
		}

		reviewedBy = &rID
	}

	return earnings.RestorePayout(
		id,
		payeeID,
		earnings.Beneficiary(dto.Beneficiary),
		dto.Amount,
		entryIDs,
		dto.Destination,
		earnings.PayoutStatus(dto.Status),
		dto.RequestedAt,
		dto.ResolvedAt,
		reviewedBy,
		dto.Note,
	)
}
