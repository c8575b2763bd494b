package jobs

import (
	"context"
	"log/slog"

	"paperround/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// CompletedFlagStore drops the per-route completed markers.
type CompletedFlagStore interface {
	ResetCompleted(ctx context.Context, before kernel.Date) (int, error)
}

// CompletedFlagResetJob clears completed markers left from earlier days.
// Today's markers are kept.
type CompletedFlagResetJob struct {
	store    CompletedFlagStore
	today    func() kernel.Date
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCompletedFlagResetJob creates the job. today is the current calendar
// day in the service time zone.
func NewCompletedFlagResetJob(
	store CompletedFlagStore,
	today func() kernel.Date,
	schedule string,
	logger *slog.Logger,
) *CompletedFlagResetJob {
	return &CompletedFlagResetJob{
		store:    store,
		today:    today,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "completed_flag_reset_job"),
	}
}

// Start registers the job and starts its scheduler.
func (j *CompletedFlagResetJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Completed flag reset job started", "schedule", j.schedule)
	return nil
}

func (j *CompletedFlagResetJob) run(ctx context.Context) {
	today := j.today()
	n, err := j.store.ResetCompleted(ctx, today)
	if err != nil {
		j.logger.ErrorContext(ctx, "Completed flag reset failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "Completed flags cleared", "routes", n, "before", today.String())
	}
}

// Stop stops the scheduler and waits for a running reset.
func (j *CompletedFlagResetJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Completed flag reset job stopped")
}
