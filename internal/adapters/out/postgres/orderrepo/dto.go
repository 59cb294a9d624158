// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed by status, delivery type, and courier so the
// dispatch backlog query stays cheap.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderType     string
	DeliveryType  string     `gorm:"index"`
	Status        int        `gorm:"index"`
	PaymentStatus string
	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	SellerID      uuid.UUID  `gorm:"type:uuid"`
	BuyerID       uuid.UUID  `gorm:"type:uuid"`
	SellerLat     float64
	SellerLng     float64
	BuyerLat      float64
	BuyerLng      float64
	TotalAmount   kernel.Money `gorm:"type:decimal(19,2)"`
	ApprovedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderType:     string(aggregate.OrderType()),
		DeliveryType:  string(aggregate.DeliveryType()),
		Status:        int(aggregate.Status()),
		PaymentStatus: string(aggregate.PaymentStatus()),
		CourierID:     courierID,
		SellerID:      aggregate.SellerID().Bytes(),
		BuyerID:       aggregate.BuyerID().Bytes(),
		SellerLat:     aggregate.SellerLocation().Latitude(),
		SellerLng:     aggregate.SellerLocation().Longitude(),
		BuyerLat:      aggregate.BuyerLocation().Latitude(),
		BuyerLng:      aggregate.BuyerLocation().Longitude(),
		TotalAmount:   aggregate.TotalAmount(),
		ApprovedAt:    aggregate.ApprovedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
	}
}

// toDomain converts a database row back to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	sellerLocation, err := kernel.NewGeoPoint(dto.SellerLat, dto.SellerLng)
	if err != nil {
		return nil, err
	}

	buyerLocation, err := kernel.NewGeoPoint(dto.BuyerLat, dto.BuyerLng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		order.Type(dto.OrderType),
		order.DeliveryType(dto.DeliveryType),
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		courierID,
		sellerID,
		buyerID,
		sellerLocation,
		buyerLocation,
		dto.TotalAmount,
		dto.ApprovedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
	)
}
