package queries

import (
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/pkg/guard"
)

var ErrListTrainingRecordsQueryIsNotConstructed = errors.New(
	"ListTrainingRecordsQuery must be created via NewListTrainingRecordsQuery constructor",
)

// ListTrainingRecordsQuery lists training records, newest first. Sessions
// that may not see every trainee's records only get their own, whatever
// trainee filter they pass.
type ListTrainingRecordsQuery struct {
	session  kernel.Session
	statuses []string
	trainee  *kernel.UUID
	limit    int

	guard guard.ConstructorGuard
}

func NewListTrainingRecordsQuery(
	session kernel.Session,
	statuses []string,
	trainee *kernel.UUID,
	limit int,
) (ListTrainingRecordsQuery, error) {
	if err := session.Validate(); err != nil {
		return ListTrainingRecordsQuery{}, err
	}

	parsed := make([]string, 0, len(statuses))
	var invalid []error
	for _, s := range statuses {
		status, err := training.ParseStatus(s)
		if err != nil {
			invalid = append(invalid, err)
			continue
		}
		parsed = append(parsed, status.String())
	}
	if trainee != nil {
		invalid = append(invalid, trainee.Validate())
	}
	if err := errors.Join(invalid...); err != nil {
		return ListTrainingRecordsQuery{}, err
	}

	return ListTrainingRecordsQuery{
		session:  session,
		statuses: parsed,
		trainee:  trainee,
		limit:    normalizeLimit(limit),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListTrainingRecordsQuery) Validate() error {
	return q.guard.Validate(ErrListTrainingRecordsQueryIsNotConstructed)
}

func (q ListTrainingRecordsQuery) Session() kernel.Session { return q.session }
func (q ListTrainingRecordsQuery) Statuses() []string     { return q.statuses }
func (q ListTrainingRecordsQuery) Trainee() *kernel.UUID  { return q.trainee }
func (q ListTrainingRecordsQuery) Limit() int             { return q.limit }

type TrainingRecordSummary struct {
	ID           string
	Status       string
	SOPCode      string
	SOPTitle     string
	TrainingDate time.Time
	TraineeID    string
	TraineeName  string
	ReviewerName string
	Notes        string
	CreatedAt    time.Time
}
