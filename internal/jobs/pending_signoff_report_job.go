package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultReportSchedule runs the report at 07:00 every day. The cron
// parser accepts a leading seconds field.
const DefaultReportSchedule = "0 0 7 * * *"

// SignoffSummaryHandler is satisfied by queries.GetPendingSignoffSummaryQueryHandler.
type SignoffSummaryHandler interface {
	Handle(ctx context.Context, query queries.GetPendingSignoffSummaryQuery) ([]queries.PendingSignoffLine, error)
}

// PendingSignoffReportJob publishes, per environment, how many shipment
// records wait on each party. Environments with nothing waiting are skipped.
type PendingSignoffReportJob struct {
	handler      SignoffSummaryHandler
	publisher    ports.EventPublisher
	environments []kernel.Environment
	schedule     string
	cron         *cron.Cron
	now          func() time.Time
	logger       *slog.Logger
}

func NewPendingSignoffReportJob(
	handler SignoffSummaryHandler,
	publisher ports.EventPublisher,
	environments []kernel.Environment,
	schedule string,
	logger *slog.Logger,
) *PendingSignoffReportJob {
	if schedule == "" {
		schedule = DefaultReportSchedule
	}
	return &PendingSignoffReportJob{
		handler:      handler,
		publisher:    publisher,
		environments: environments,
		schedule:     schedule,
		cron:         cron.New(cron.WithSeconds()),
		now:          time.Now,
		logger:       logger.With("component", "pending_signoff_report_job"),
	}
}

func (j *PendingSignoffReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending sign-off report job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running report to finish.
func (j *PendingSignoffReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending sign-off report job stopped")
}

// Run reports every environment once. A failing environment is logged and
// does not stop the others.
func (j *PendingSignoffReportJob) Run(ctx context.Context) {
	for _, env := range j.environments {
		if err := j.report(ctx, env); err != nil {
			j.logger.ErrorContext(ctx, "Pending sign-off report failed", "environment", env.String(), "error", err)
		}
	}
}

func (j *PendingSignoffReportJob) report(ctx context.Context, env kernel.Environment) error {
	session, err := kernel.SystemSession(env)
	if err != nil {
		return err
	}
	query, err := queries.NewGetPendingSignoffSummaryQuery(session)
	if err != nil {
		return err
	}

	lines, err := j.handler.Handle(ctx, query)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	summary := ports.SignoffSummary{Environment: env.String()}
	for _, l := range lines {
		summary.Waiting = append(summary.Waiting, ports.SignoffSummaryLine{
			Status:   l.Status,
			Count:    l.Count,
			OldestID: l.OldestID,
			Since:    l.Since,
		})
	}

	return j.publisher.Publish(ctx, ports.Event{
		Type:       ports.EventSignoffSummary,
		Key:        env.String(),
		OccurredAt: j.now().UTC(),
		Payload:    summary,
	})
}
