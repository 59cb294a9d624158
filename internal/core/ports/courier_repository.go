package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier
// aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate, except
	// its telemetry columns, which belong to UpdateTelemetry.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// UpdateTelemetry persists only the courier's position, online flag,
	// and heartbeat timestamp. Heartbeats write through this so a stale
	// in-memory snapshot can never overwrite job slots or history that a
	// concurrent dispatch transaction committed.
	UpdateTelemetry(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves couriers that are online and hold at
	// least one free job slot. Radius filtering happens in the matcher,
	// which needs the pickup point.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
