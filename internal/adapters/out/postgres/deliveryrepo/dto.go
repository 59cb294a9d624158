// Package deliveryrepo provides data transfer objects and mapping
// functions for delivery record persistence.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// records. Each order has at most one delivery, enforced by the unique
// index on order_id.
type DeliveryDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CourierID           uuid.UUID `gorm:"type:uuid;index"`
	Status              int       `gorm:"index"`
	VerificationMethod  string
	DistanceKm          float64
	PickupConfirmedAt   *time.Time
	DeliveryConfirmedAt *time.Time
	Notes               string
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:                  aggregate.ID().Bytes(),
		OrderID:             aggregate.OrderID().Bytes(),
		CourierID:           aggregate.CourierID().Bytes(),
		Status:              int(aggregate.Status()),
		VerificationMethod:  string(aggregate.VerificationMethod()),
		DistanceKm:          aggregate.DistanceKm(),
		PickupConfirmedAt:   aggregate.PickupConfirmedAt(),
		DeliveryConfirmedAt: aggregate.DeliveryConfirmedAt(),
		Notes:               aggregate.Notes(),
	}
}

// toDomain converts a database row back to a delivery aggregate via RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		courierID,
		delivery.Status(dto.Status),
		delivery.VerificationMethod(dto.VerificationMethod),
		dto.DistanceKm,
		dto.PickupConfirmedAt,
		dto.DeliveryConfirmedAt,
		dto.Notes,
	)
}
