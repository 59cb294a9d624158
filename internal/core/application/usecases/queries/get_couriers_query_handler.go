package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCouriersQueryHandler reads the courier fleet from the database.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetCouriersQueryHandler creates a handler for fleet queries.
func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

// Handle executes the fleet query.
func (h GetCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetCouriersQuery,
) ([]GetCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	fleet := make([]GetCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			lat,
			lng,
			is_online,
			last_location_update,
			active_jobs,
			rating
		FROM couriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                 uuid.UUID
			name               string
			lat, lng           float64
			isOnline           bool
			lastLocationUpdate time.Time
			activeJobs         int
			rating             float64
		)

		if err = rows.Scan(&id, &name, &lat, &lng, &isOnline, &lastLocationUpdate, &activeJobs, &rating); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}

		fleet = append(fleet, GetCouriersQueryResponse{
			CourierID:          courierID,
			Name:               name,
			Location:           location,
			IsOnline:           isOnline,
			LastLocationUpdate: lastLocationUpdate,
			ActiveJobs:         activeJobs,
			Rating:             rating,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fleet, nil
}
