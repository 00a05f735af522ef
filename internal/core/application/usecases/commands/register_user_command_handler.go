package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/user"
	"shipflow/internal/core/ports"
	"shipflow/internal/pkg/errs"
)

// RegisterUserCommandHandler stores a pending account and asks the mail
// relay to tell an administrator about it. The account exists even when
// the notification fails.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	notifier   ports.AdminNotifier
	logger     *slog.Logger
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	notifier ports.AdminNotifier,
	logger *slog.Logger,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		notifier:   notifier,
		logger:     logger.With("component", "RegisterUserCommandHandler"),
	}
}

func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return kernel.UUID{}, err
	}

	u, err := user.NewUser(kernel.NewUUID(), cmd.Name(), cmd.Email(), hash, cmd.RequestedRole(), time.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	_, err = repo.GetByEmail(ctx, u.Email())
	switch {
	case err == nil:
		return kernel.UUID{}, errs.NewObjectAlreadyExistsError("email", u.Email())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return kernel.UUID{}, storageError("get user by email", err)
	}

	if err = repo.Add(ctx, u); err != nil {
		return kernel.UUID{}, storageError("add user", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, storageError("commit user", err)
	}

	messageID, err := h.notifier.NotifyRegistration(ctx, u.Name(), u.Email())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to notify admin about registration",
			"user", u.ID().String(), "error", err)
	} else {
		h.logger.InfoContext(ctx, "admin notified about registration",
			"user", u.ID().String(), "messageId", messageID)
	}

	return u.ID(), nil
}
