package jobs

import (
	"fmt"
	"log/slog"

	"paperround/internal/core/domain/model/kernel"
)

// Schedules holds the cron expressions of the jobs, seconds first.
type Schedules struct {
	HolidayRefresh string
	CompletedReset string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	holidayRefreshJob *HolidayRefreshJob
	completedResetJob *CompletedFlagResetJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	refreshHandler HolidayRefreshHandler,
	flags CompletedFlagStore,
	today func() kernel.Date,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		holidayRefreshJob: NewHolidayRefreshJob(refreshHandler, schedules.HolidayRefresh, logger),
		completedResetJob: NewCompletedFlagResetJob(flags, today, schedules.CompletedReset, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.holidayRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start holiday refresh job: %w", err)
	}

	if err := jm.completedResetJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.holidayRefreshJob.Stop()
		return fmt.Errorf("failed to start completed flag reset job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.completedResetJob.Stop()
	jm.holidayRefreshJob.Stop()
}
