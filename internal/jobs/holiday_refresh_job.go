package jobs

import (
	"context"
	"log/slog"

	"paperround/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// HolidayRefreshHandler is the command the job fires.
type HolidayRefreshHandler interface {
	Handle(ctx context.Context, cmd commands.RefreshHolidaysCommand) (int, error)
}

// HolidayRefreshJob reloads the holiday calendar once a day so a holiday
// added to the table is picked up without a restart.
type HolidayRefreshJob struct {
	handler  HolidayRefreshHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewHolidayRefreshJob creates the job. schedule is a six-field cron
// expression (seconds first).
func NewHolidayRefreshJob(handler HolidayRefreshHandler, schedule string, logger *slog.Logger) *HolidayRefreshJob {
	return &HolidayRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "holiday_refresh_job"),
	}
}

// Start registers the job and starts its scheduler.
func (j *HolidayRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Holiday refresh job started", "schedule", j.schedule)
	return nil
}

func (j *HolidayRefreshJob) run(ctx context.Context) {
	n, err := j.handler.Handle(ctx, commands.NewRefreshHolidaysCommand())
	if err != nil {
		// The previous calendar stays cached; the next tick retries.
		j.logger.ErrorContext(ctx, "Holiday refresh failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Holidays refreshed", "holidays", n)
}

// Stop stops the scheduler and waits for a running refresh.
func (j *HolidayRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Holiday refresh job stopped")
}
