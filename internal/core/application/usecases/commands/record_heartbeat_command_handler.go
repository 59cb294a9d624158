package commands

import (
	"context"
	"time"
)

// RecordHeartbeatCommandHandler persists courier telemetry.
// A heartbeat only moves the courier's position and online flag; job
// slots and delivery state are untouched, so a courier going offline
// mid-delivery keeps their active job.
type RecordHeartbeatCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewRecordHeartbeatCommandHandler creates a handler for courier telemetry.
func NewRecordHeartbeatCommandHandler(uowFactory CourierUoWFactory) RecordHeartbeatCommandHandler {
	return RecordHeartbeatCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the heartbeat command.
func (h RecordHeartbeatCommandHandler) Handle(ctx context.Context, cmd RecordHeartbeatCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.RecordHeartbeat(cmd.Location(), cmd.IsOnline(), time.Now().UTC()); err != nil {
		return err
	}

	if err = courierRepo.UpdateTelemetry(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
