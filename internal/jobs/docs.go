// Package jobs provides scheduled background tasks for the warehouse.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. LotExpiryJob - Moves available lots whose expiry date has passed to expired
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(&expireLotsHandler, metrics, "0 5 * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field. The expiry
// sweep defaults to DefaultLotExpirySchedule and can be overridden through
// configuration. The allocator also expires the lots it locks, so the job
// keeps stored statuses and stock reports current between allocations.
//
// # Error Handling
//
// - Failed sweeps are logged and retried on the next tick
// - A sweep still running when the next tick fires is skipped
package jobs
