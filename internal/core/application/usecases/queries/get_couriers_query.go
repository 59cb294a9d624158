package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery retrieves all registered couriers with their current
// telemetry and workload, for the operator fleet view.
type GetCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates a query for the courier fleet.
func NewGetCouriersQuery() GetCouriersQuery {
	return GetCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// GetCouriersQueryResponse is one courier in the fleet view.
type GetCouriersQueryResponse struct {
	CourierID          kernel.UUID
	Name               string
	Location           kernel.GeoPoint
	IsOnline           bool
	LastLocationUpdate time.Time
	ActiveJobs         int
	Rating             float64
}
