package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderCanceller is satisfied by commands.CancelStaleOrdersCommandHandler.
type StaleOrderCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelStaleOrdersCommand) (int, error)
}

// StaleOrderJob cancels orders that stayed Received or Quoted for longer than
// ttl. The schedule is a cron spec with a leading seconds field.
type StaleOrderJob struct {
	handler  StaleOrderCanceller
	schedule string
	ttl      time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleOrderJob creates the job. now is the job's clock; pass time.Now
// outside of tests.
func NewStaleOrderJob(
	handler StaleOrderCanceller,
	schedule string,
	ttl time.Duration,
	now func() time.Time,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		now:      now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_order_job"),
	}
}

// Start schedules the job.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Run cancels the orders created before now minus ttl and returns how many
// were cancelled. Failures are logged, not returned.
func (j *StaleOrderJob) Run(ctx context.Context) int {
	cmd, err := commands.NewCancelStaleOrdersCommand(j.now().Add(-j.ttl))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order job failed", "error", err)
		return 0
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order job failed", "error", err)
		return 0
	}

	if cancelled > 0 {
		j.logger.InfoContext(ctx, "Cancelled stale orders", "count", cancelled, "cutoff", cmd.Cutoff())
	}
	return cancelled
}

// Stop stops the scheduler and waits for a running cancellation to finish.
func (j *StaleOrderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
