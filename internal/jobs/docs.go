// Package jobs provides scheduled background tasks of the service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a leading seconds
// field in their schedules.
//
// # Available Jobs
//
// 1. PurgeDeletedJob - hard-deletes customers and products soft-deleted for
// longer than the configured retention (PURGE_SCHEDULE, PURGE_RETENTION)
//
// # Usage
//
//	purge, err := jobs.NewPurgeDeletedJob(purger, "0 0 3 * * *", 30*24*time.Hour, registry, logger)
//	if err != nil {
//		return err
//	}
//
//	jobManager := jobs.NewJobManager(purge)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed run is logged and retried at the next tick; it never stops the service
// - Failed job starts will stop any already running jobs
package jobs
