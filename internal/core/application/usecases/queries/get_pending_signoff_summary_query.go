package queries

import (
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"
)

var ErrGetPendingSignoffSummaryQueryIsNotConstructed = errors.New(
	"GetPendingSignoffSummaryQuery must be created via NewGetPendingSignoffSummaryQuery constructor",
)

// GetPendingSignoffSummaryQuery counts the records waiting on each party.
type GetPendingSignoffSummaryQuery struct {
	session kernel.Session

	guard guard.ConstructorGuard
}

func NewGetPendingSignoffSummaryQuery(session kernel.Session) (GetPendingSignoffSummaryQuery, error) {
	if err := session.Validate(); err != nil {
		return GetPendingSignoffSummaryQuery{}, err
	}
	return GetPendingSignoffSummaryQuery{session: session, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingSignoffSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingSignoffSummaryQueryIsNotConstructed)
}

func (q GetPendingSignoffSummaryQuery) Session() kernel.Session { return q.session }

// PendingSignoffLine is one status that still needs a signature: how many
// records sit in it, the oldest of them and when it was created.
type PendingSignoffLine struct {
	Status   string
	Party    string
	Count    int64
	OldestID string
	Since    time.Time
}
