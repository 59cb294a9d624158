// Package courierrepo provides data transfer objects and mapping
// functions for courier persistence.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates, including telemetry and job-slot state.
type CourierDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string
	Lat                 float64
	Lng                 float64
	IsOnline            bool `gorm:"index"`
	LastLocationUpdate  time.Time
	MaxDeliveryRadiusKm float64
	ActiveJobs          int
	MaxActiveJobs       int
	CompletedDeliveries int
	Rating              float64
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		Lat:                 aggregate.Location().Latitude(),
		Lng:                 aggregate.Location().Longitude(),
		IsOnline:            aggregate.IsOnline(),
		LastLocationUpdate:  aggregate.LastLocationUpdate(),
		MaxDeliveryRadiusKm: aggregate.MaxDeliveryRadiusKm(),
		ActiveJobs:          aggregate.ActiveJobs(),
		MaxActiveJobs:       aggregate.MaxActiveJobs(),
		CompletedDeliveries: aggregate.CompletedDeliveries(),
		Rating:              aggregate.Rating(),
	}
}

// toDomain converts a database row back to a courier aggregate via RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		location,
		dto.IsOnline,
		dto.LastLocationUpdate,
		dto.MaxDeliveryRadiusKm,
		dto.ActiveJobs,
		dto.MaxActiveJobs,
		dto.CompletedDeliveries,
		dto.Rating,
	)
}
