package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/ports"
	"shipflow/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSummaryHandler struct{ mock.Mock }

func (m *MockSummaryHandler) Handle(
	ctx context.Context,
	query queries.GetPendingSignoffSummaryQuery,
) ([]queries.PendingSignoffLine, error) {
	args := m.Called(ctx, query.Session().Environment())
	lines, _ := args.Get(0).([]queries.PendingSignoffLine)
	return lines, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error { return nil }

func TestPendingSignoffReportJob_Run(t *testing.T) {
	since := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	handler := &MockSummaryHandler{}
	publisher := &MockEventPublisher{}

	handler.On("Handle", mock.Anything, kernel.EnvironmentProduction).Return([]queries.PendingSignoffLine{
		{Status: "Pending Inspection", Party: "inspector", Count: 3, OldestID: "SHP-000004", Since: since},
	}, nil).Once()
	handler.On("Handle", mock.Anything, kernel.EnvironmentTest).Return(nil, nil).Once()

	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []ports.Event) bool {
		if len(events) != 1 || events[0].Type != ports.EventSignoffSummary || events[0].Key != "production" {
			return false
		}
		summary, ok := events[0].Payload.(ports.SignoffSummary)
		return ok && summary.Environment == "production" &&
			len(summary.Waiting) == 1 &&
			summary.Waiting[0] == ports.SignoffSummaryLine{Status: "Pending Inspection", Count: 3, OldestID: "SHP-000004", Since: since}
	})).Return(nil).Once()

	job := jobs.NewPendingSignoffReportJob(handler, publisher,
		[]kernel.Environment{kernel.EnvironmentProduction, kernel.EnvironmentTest}, "", slog.New(slog.DiscardHandler))
	job.Run(t.Context())

	handler.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPendingSignoffReportJob_FailingEnvironmentDoesNotStopOthers(t *testing.T) {
	handler := &MockSummaryHandler{}
	publisher := &MockEventPublisher{}

	handler.On("Handle", mock.Anything, kernel.EnvironmentTest).Return(nil, errors.New("test database not configured")).Once()
	handler.On("Handle", mock.Anything, kernel.EnvironmentProduction).Return([]queries.PendingSignoffLine{
		{Status: "Pending Approval", Count: 1, OldestID: "SHP-000009"},
	}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	job := jobs.NewPendingSignoffReportJob(handler, publisher,
		[]kernel.Environment{kernel.EnvironmentTest, kernel.EnvironmentProduction}, "", slog.New(slog.DiscardHandler))
	job.Run(t.Context())

	handler.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPendingSignoffReportJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewPendingSignoffReportJob(&MockSummaryHandler{}, &MockEventPublisher{},
		nil, "every morning", slog.New(slog.DiscardHandler))

	require.Error(t, job.Start())
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j fakeJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j fakeJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("a failed start stops the jobs already running", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(
			fakeJob{name: "a", log: &log},
			fakeJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
			fakeJob{name: "c", log: &log},
		)

		err := jm.StartAll()

		require.Error(t, err)
		assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
	})
}
