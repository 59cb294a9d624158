package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchSweepJob   *DispatchSweepJob
	earningsReleaseJob *EarningsReleaseJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	assignCouriersHandler commands.AssignCouriersCommandHandler,
	releaseEarningsHandler commands.ReleaseEarningsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchSweepJob:   NewDispatchSweepJob(assignCouriersHandler, logger),
		earningsReleaseJob: NewEarningsReleaseJob(releaseEarningsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch sweep job: %w", err)
	}

	if err := jm.earningsReleaseJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchSweepJob.Stop()
		return fmt.Errorf("failed to start earnings release job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.earningsReleaseJob.Stop()
	jm.dispatchSweepJob.Stop()
}
