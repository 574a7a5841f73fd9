package jobs

import (
	"fmt"
	"log/slog"

	"orderdesk/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	refreshJob    *ManagementRefreshJob
	statisticsJob *StatisticsReportJob
}

// NewJobManager wires the jobs around the management view. An empty refreshSchedule
// disables the refresh job; the statistics report always runs.
func NewJobManager(
	viewHandler queries.GetManagementViewQueryHandler,
	refreshSchedule string,
	statisticsSchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		statisticsJob: NewStatisticsReportJob(viewHandler, statisticsSchedule, logger),
	}
	if refreshSchedule != "" {
		jm.refreshJob = NewManagementRefreshJob(viewHandler, refreshSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statisticsJob.Start(); err != nil {
		return fmt.Errorf("failed to start statistics report job: %w", err)
	}

	if jm.refreshJob != nil {
		if err := jm.refreshJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.statisticsJob.Stop()
			return fmt.Errorf("failed to start management refresh job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	if jm.refreshJob != nil {
		jm.refreshJob.Stop()
	}
	jm.statisticsJob.Stop()
}
