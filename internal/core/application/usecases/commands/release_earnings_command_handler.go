package commands

import (
	"context"
	"time"
)

// ReleaseEarningsCommandHandler runs the holding-window release sweep.
// Entries parked on hold are excluded by the repository query and stay
// put until the dispute resolves.
type ReleaseEarningsCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewReleaseEarningsCommandHandler creates a handler for release sweeps.
func NewReleaseEarningsCommandHandler(uowFactory LedgerUoWFactory) ReleaseEarningsCommandHandler {
	return ReleaseEarningsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one release sweep. An empty batch is not an error.
func (h ReleaseEarningsCommandHandler) Handle(ctx context.Context, cmd ReleaseEarningsCommand) error {
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

	earningsRepo := uow.EarningsRepository()
	now := time.Now().UTC()

	releasable, err := earningsRepo.GetAllReleasable(ctx, now)
	if err != nil {
		return err
	}

	for _, entry := range releasable {
		if err = entry.Release(now); err != nil {
			return err
		}

		if err = earningsRepo.Update(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
