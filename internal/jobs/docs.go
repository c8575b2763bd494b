// Package jobs provides scheduled background tasks for the run engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules take six fields, seconds first.
//
// # Available Jobs
//
// 1. HolidayRefreshJob - reloads the cached holiday calendar (default "0 5 0 * * *")
// 2. CompletedFlagResetJob - drops completed markers older than today (default "0 0 0 * * *")
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(refreshHandler, sessionStore, runner.Today, jobs.Schedules{
//		HolidayRefresh: "0 5 0 * * *",
//		CompletedReset: "0 0 0 * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and retried on the next tick. A failed refresh
// keeps the previous calendar. A failed start stops the jobs already running.
package jobs
