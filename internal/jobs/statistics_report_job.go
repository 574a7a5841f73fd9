package jobs

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatisticsReportJob logs the management view counters on a schedule. It reads the
// local view only and never touches the store.
type StatisticsReportJob struct {
	handler  queries.GetManagementViewQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStatisticsReportJob(
	handler queries.GetManagementViewQueryHandler,
	schedule string,
	logger *slog.Logger,
) *StatisticsReportJob {
	return &StatisticsReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "statistics_report_job"),
	}
}

func (j *StatisticsReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Statistics report job started", "schedule", j.schedule)
	return nil
}

func (j *StatisticsReportJob) Run(ctx context.Context) {
	view, err := j.handler.Handle(ctx, queries.NewGetManagementViewQuery(false))
	if err != nil {
		j.logger.ErrorContext(ctx, "Statistics report failed", "error", err)
		return
	}

	stats := view.Statistics
	j.logger.InfoContext(ctx, "Order statistics",
		"pendingCount", stats.PendingCount,
		"deliveredCount", stats.DeliveredCount,
		"totalCount", stats.TotalCount,
		"pendingEggBoxes", stats.PendingEggBoxes,
		"pendingOilCans", stats.PendingOilCans,
		"unconfirmedChanges", view.PendingChanges,
	)
}

func (j *StatisticsReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Statistics report job stopped")
}
