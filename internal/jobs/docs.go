// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic sweeps of the order and return workflows.
//
// # Available Jobs
//
// 1. PendingOrderExpirationJob - Cancels pending orders whose payment never arrived
// 2. ReturnReminderJob - Emails customers who were approved for return shipping but never shipped
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireHandler, reminderHandler, config, logger)
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
// Both sweeps process items one transaction at a time. Items that were
// changed or removed concurrently are skipped inside the handlers; a job run
// only fails when listing the candidates fails, and that is logged and
// retried on the next tick.
package jobs
