// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. ParcelExpiryJob - Runs hourly to purge parcels past their retention deadline
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(purgeExpiredHandler, logger)
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
// The expiry job uses the cron expression "0 * * * *" and runs at the top
// of every hour. Parcels are kept for thirty days after creation, so an
// hourly sweep keeps the table bounded without measurable load.
//
// # Error Handling
//
// - Expiry job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
