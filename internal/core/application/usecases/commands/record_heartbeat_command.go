package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecordHeartbeatCommandIsNotConstructed = errors.New(
	"RecordHeartbeatCommand must be created via NewRecordHeartbeatCommand constructor",
)

// RecordHeartbeatCommand carries one telemetry report from a courier's
// device: current position and online flag. Heartbeats are
// last-write-wins and never change job state.
type RecordHeartbeatCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	location  kernel.GeoPoint
	isOnline  bool

	guard guard.ConstructorGuard
}

// NewRecordHeartbeatCommand creates a command to record courier telemetry.
func NewRecordHeartbeatCommand(
	courierID kernel.UUID, location kernel.GeoPoint, isOnline bool,
) (RecordHeartbeatCommand, error) {
	if err := errors.Join(courierID.Validate(), location.Validate()); err != nil {
		return RecordHeartbeatCommand{}, err
	}

	return RecordHeartbeatCommand{
		courierID: courierID,
		location:  location,
		isOnline:  isOnline,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordHeartbeatCommand) Validate() error {
	return c.guard.Validate(ErrRecordHeartbeatCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c RecordHeartbeatCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c RecordHeartbeatCommand) Location() kernel.GeoPoint {
	return c.location
}

// IsOnline returns the reported availability flag.
func (c RecordHeartbeatCommand) IsOnline() bool {
	return c.isOnline
}
