// Package jobs provides scheduled background tasks for the order desk.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3. Schedules
// take six fields, the first being seconds.
//
// # Available Jobs
//
// 1. ManagementRefreshJob - re-reads the order store into the management view (REFRESH_SCHEDULE, optional)
// 2. StatisticsReportJob - logs the management view counters (STATISTICS_SCHEDULE)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(viewHandler, "*/30 * * * * *", "0 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next run is attempted on schedule. A failed refresh
// leaves the management view untouched. Failed job starts stop any already running jobs.
package jobs
