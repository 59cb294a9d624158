package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchSweepJob runs the courier matching sweep over the dispatch
// backlog. Runs every second so approved orders wait as little as
// possible for an assignment.
type DispatchSweepJob struct {
	handler commands.AssignCouriersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchSweepJob creates a new job for sweeping the dispatch backlog.
func NewDispatchSweepJob(handler commands.AssignCouriersCommandHandler, logger *slog.Logger) *DispatchSweepJob {
	return &DispatchSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_sweep_job"),
	}
}

// Start begins the dispatch sweep job to run every second.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignCouriersCommand()

		// An empty backlog or a sweep with no eligible couriers is a
		// normal outcome, not an error; the handler reports only real
		// infrastructure failures.
		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job started (running every second)")
	return nil
}

// Stop stops the dispatch sweep job.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job stopped")
}
