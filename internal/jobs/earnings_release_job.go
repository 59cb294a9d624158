package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EarningsReleaseJob moves ledger entries whose hold period has elapsed
// from pending to available. Runs every minute; the hold period is
// measured in hours, so finer granularity buys nothing.
type EarningsReleaseJob struct {
	handler commands.ReleaseEarningsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEarningsReleaseJob creates a new job for releasing matured earnings.
func NewEarningsReleaseJob(handler commands.ReleaseEarningsCommandHandler, logger *slog.Logger) *EarningsReleaseJob {
	return &EarningsReleaseJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "earnings_release_job"),
	}
}

// Start begins the earnings release job to run every minute.
func (j *EarningsReleaseJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReleaseEarningsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Earnings release job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Earnings release job started (running every minute)")
	return nil
}

// Stop stops the earnings release job.
func (j *EarningsReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Earnings release job stopped")
}
