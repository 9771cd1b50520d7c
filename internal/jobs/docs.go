// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. DeliveryCreationJob - Runs every second to create pending deliveries
// for orders that became ready for pickup
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(createDeliveriesHandler, logger)
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
// The job uses the cron expression "* * * * * *" which means it runs every
// second. This frequency keeps the courier-facing feed close to real time
// without a push transport.
//
// # Error Handling
//
// The sweep is idempotent, so a failed run is only logged; the next run
// picks up whatever the failed one missed. Failed job starts will stop any
// already running jobs.
package jobs
