// Package jobs provides the scheduled background tasks of the fulfillment
// engine, built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
//  1. ReplenishmentJob runs the replenishment forecaster for every active
//     store (default: daily at 06:00).
//  2. OverdueInvoiceJob re-derives the status of open invoices past their
//     due date (default: hourly).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.Schedules{
//		Replenishment:  "0 0 6 * * *",
//		OverdueRefresh: "0 0 * * * *",
//	}, replenishmentHandler, overdueHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("Failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs never panic or exit on a failed run. The forecaster reports failing
// stores individually and keeps scanning the rest.
package jobs
