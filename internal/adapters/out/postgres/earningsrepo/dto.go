// Package earningsrepo provides data transfer objects and mapping
// functions for earnings ledger entry persistence.
package earningsrepo

import (
	"time"

	"dispatch/internal/core/domain/model/earnings"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryDTO represents the database structure for persisting earnings
// ledger entries. The payout_id column is the only link between entries
// and payouts; a payout's batch is loaded by querying it.
type EntryDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Beneficiary      string
	PayeeID          uuid.UUID  `gorm:"type:uuid;index"`
	OrderID          uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryID       *uuid.UUID `gorm:"type:uuid"`
	GrossAmount      kernel.Money    `gorm:"type:decimal(19,2)"`
	Rate             decimal.Decimal `gorm:"type:decimal(6,4)"`
	CommissionAmount kernel.Money    `gorm:"type:decimal(19,2)"`
	NetAmount        kernel.Money    `gorm:"type:decimal(19,2)"`
	Status           string          `gorm:"index"`
	AvailableDate    time.Time       `gorm:"index"`
	PayoutID         *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for earnings entries.
func (EntryDTO) TableName() string {
	return "earnings_entries"
}

// fromDomain converts an earnings entry aggregate to its database representation.
func fromDomain(aggregate *earnings.Entry) EntryDTO {
	var deliveryID *uuid.UUID
	if id := aggregate.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	var payoutID *uuid.UUID
	if id := aggregate.PayoutID(); id != nil {
		raw := id.Bytes()
		payoutID = &raw
	}

	return EntryDTO{
		ID:               aggregate.ID().Bytes(),
		Beneficiary:      string(aggregate.Beneficiary()),
		PayeeID:          aggregate.PayeeID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		DeliveryID:       deliveryID,
		GrossAmount:      aggregate.GrossAmount(),
		Rate:             aggregate.Rate(),
		CommissionAmount: aggregate.CommissionAmount(),
		NetAmount:        aggregate.NetAmount(),
		Status:           string(aggregate.Status()),
		AvailableDate:    aggregate.AvailableDate(),
		PayoutID:         payoutID,
	}
}

// toDomain converts a database row back to an earnings entry via RestoreEntry.
func toDomain(dto EntryDTO) (*earnings.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	payeeID, err := kernel.UUIDFromBytes(dto.PayeeID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return nil, deliveryErr
		}

		deliveryID = &dID
	}

	var payoutID *kernel.UUID
	if dto.PayoutID != nil {
		pID, payoutErr := kernel.UUIDFromBytes((*dto.PayoutID)[:])
		if payoutErr != nil {
			return nil, payoutErr
		}

		payoutID = &pID
	}

	return earnings.RestoreEntry(
		id,
		earnings.Beneficiary(dto.Beneficiary),
		payeeID,
		orderID,
		deliveryID,
		dto.GrossAmount,
		dto.Rate,
		dto.CommissionAmount,
		dto.NetAmount,
		earnings.EntryStatus(dto.Status),
		dto.AvailableDate,
		payoutID,
	)
}
