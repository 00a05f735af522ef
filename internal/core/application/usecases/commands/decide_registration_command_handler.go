package commands

import (
	"context"
	"time"

	"shipflow/internal/core/domain/model/user"
	"shipflow/internal/core/domain/services"
)

type DecideRegistrationCommandHandler struct {
	uowFactory UserUoWFactory
	policy     services.AccessPolicy
}

func NewDecideRegistrationCommandHandler(uowFactory UserUoWFactory, policy services.AccessPolicy) DecideRegistrationCommandHandler {
	return DecideRegistrationCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle returns the user's status after the decision.
func (h *DecideRegistrationCommandHandler) Handle(ctx context.Context, cmd DecideRegistrationCommand) (user.Status, error) {
	if err := cmd.Validate(); err != nil {
		return user.Unknown, err
	}
	if err := h.policy.Authorize(cmd.Session(), services.ManageRegistrations); err != nil {
		return user.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return user.Unknown, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.Get(ctx, cmd.UserID())
	if err != nil {
		return user.Unknown, storageError("get user", err)
	}

	now := time.Now()
	if cmd.IsApproval() {
		err = u.Approve(cmd.Session().Identity(), cmd.Role(), now)
	} else {
		err = u.Reject(cmd.Session().Identity(), cmd.Reason(), now)
	}
	if err != nil {
		return user.Unknown, err
	}

	if err = repo.Update(ctx, u); err != nil {
		return user.Unknown, storageError("update user", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return user.Unknown, storageError("commit user", err)
	}
	return u.Status(), nil
}
