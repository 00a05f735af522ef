package queries

import (
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"
)

var ErrListPendingRegistrationsQueryIsNotConstructed = errors.New(
	"ListPendingRegistrationsQuery must be created via NewListPendingRegistrationsQuery constructor",
)

// ListPendingRegistrationsQuery lists registrations awaiting an administrator.
type ListPendingRegistrationsQuery struct {
	session kernel.Session

	guard guard.ConstructorGuard
}

func NewListPendingRegistrationsQuery(session kernel.Session) (ListPendingRegistrationsQuery, error) {
	if err := session.Validate(); err != nil {
		return ListPendingRegistrationsQuery{}, err
	}
	return ListPendingRegistrationsQuery{session: session, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPendingRegistrationsQuery) Validate() error {
	return q.guard.Validate(ErrListPendingRegistrationsQueryIsNotConstructed)
}

func (q ListPendingRegistrationsQuery) Session() kernel.Session { return q.session }

type PendingRegistration struct {
	ID            string
	Name          string
	Email         string
	RequestedRole string
	CreatedAt     time.Time
}
