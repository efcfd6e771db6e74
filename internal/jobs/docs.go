// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// StaleOrderJob cancels orders that were received or quoted but never booked
// within STALE_ORDER_TTL. It runs on STALE_ORDER_SCHEDULE, a cron expression
// with a seconds field ("0 */5 * * * *" runs every five minutes).
//
// # Usage
//
//	staleJob := jobs.NewStaleOrderJob(handler, "0 */5 * * * *", 24*time.Hour, time.Now, logger)
//	jobManager := jobs.NewJobManager(staleJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs log their failures and never stop the scheduler. A job that fails
// to start stops the jobs already started.
package jobs
