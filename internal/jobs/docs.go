// Package jobs provides scheduled background tasks for the pharmacy service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order lifecycle management.
//
// # Available Jobs
//
// 1. StaleOrderCancellationJob - Runs every minute to cancel orders that have
// sat in placed status longer than the configured TTL, returning their
// reserved stock
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, 24*time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Cancellation skips orders that changed status between listing and cancel,
// so racing a patient's own confirm or cancel never surfaces as a job error.
// Genuine failures are logged and retried on the next tick.
package jobs
