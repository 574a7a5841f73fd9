package jobs

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ManagementRefreshJob re-reads the order store into the management view on a schedule,
// closing any window in which the view and the store disagree.
type ManagementRefreshJob struct {
	handler  queries.GetManagementViewQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewManagementRefreshJob creates the job. schedule is a cron expression with a leading
// seconds field.
func NewManagementRefreshJob(
	handler queries.GetManagementViewQueryHandler,
	schedule string,
	logger *slog.Logger,
) *ManagementRefreshJob {
	return &ManagementRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "management_refresh_job"),
	}
}

func (j *ManagementRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Management refresh job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh. A failed refresh leaves the view as it was.
func (j *ManagementRefreshJob) Run(ctx context.Context) {
	view, err := j.handler.Handle(ctx, queries.NewGetManagementViewQuery(true))
	if err != nil {
		j.logger.ErrorContext(ctx, "Management refresh failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Management view refreshed", "orders", len(view.Orders))
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *ManagementRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Management refresh job stopped")
}
