package commands

import (
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/guard"
)

var ErrDecideRegistrationCommandIsNotConstructed = errors.New(
	"DecideRegistrationCommand must be created via NewApproveUserCommand or NewRejectUserCommand",
)

// DecideRegistrationCommand approves a pending user with a role, or rejects
// them with a reason.
type DecideRegistrationCommand struct { //nolint:recvcheck //using for validation
	session kernel.Session
	userID  kernel.UUID
	approve bool
	role    kernel.Role
	reason  string

	guard guard.ConstructorGuard
}

func NewApproveUserCommand(session kernel.Session, userID kernel.UUID, role kernel.Role) (DecideRegistrationCommand, error) {
	if err := errors.Join(session.Validate(), userID.Validate(), role.Validate()); err != nil {
		return DecideRegistrationCommand{}, err
	}
	return DecideRegistrationCommand{
		session: session,
		userID:  userID,
		approve: true,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewRejectUserCommand leaves the reason check to the aggregate so a
// missing reason is reported as a missing field.
func NewRejectUserCommand(session kernel.Session, userID kernel.UUID, reason string) (DecideRegistrationCommand, error) {
	if err := errors.Join(session.Validate(), userID.Validate()); err != nil {
		return DecideRegistrationCommand{}, err
	}
	return DecideRegistrationCommand{
		session: session,
		userID:  userID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DecideRegistrationCommand) Validate() error {
	return c.guard.Validate(ErrDecideRegistrationCommandIsNotConstructed)
}

func (c DecideRegistrationCommand) Session() kernel.Session { return c.session }
func (c DecideRegistrationCommand) UserID() kernel.UUID     { return c.userID }
func (c DecideRegistrationCommand) IsApproval() bool        { return c.approve }
func (c DecideRegistrationCommand) Role() kernel.Role       { return c.role }
func (c DecideRegistrationCommand) Reason() string          { return c.reason }
