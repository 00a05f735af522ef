package commands

import (
	"context"
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/user"
	"shipflow/internal/core/ports"
	"shipflow/internal/pkg/errs"
)

// AuthenticateResult is the issued bearer token and the session it carries.
type AuthenticateResult struct {
	Token     string
	ExpiresAt time.Time
	Session   kernel.Session
}

type AuthenticateCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenService
}

func NewAuthenticateCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
) AuthenticateCommandHandler {
	return AuthenticateCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
	}
}

// Handle fails with errs.ErrUnauthenticated for an unknown email or a wrong
// password, without telling the two apart. Pending and rejected users get
// a PermissionError.
func (h *AuthenticateCommandHandler) Handle(ctx context.Context, cmd AuthenticateCommand) (AuthenticateResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuthenticateResult{}, err
	}

	u, err := h.lookup(ctx, cmd.Email())
	if err != nil {
		return AuthenticateResult{}, err
	}

	ok, err := h.hasher.Verify(cmd.Password(), u.PasswordHash())
	if err != nil {
		return AuthenticateResult{}, err
	}
	if !ok {
		return AuthenticateResult{}, errs.ErrUnauthenticated
	}

	if err = u.CanSignIn(); err != nil {
		return AuthenticateResult{}, err
	}

	session, err := kernel.NewSession(u.ID(), u.Role(), cmd.Environment())
	if err != nil {
		return AuthenticateResult{}, err
	}
	session = session.WithEmail(u.Email())

	token, expiresAt, err := h.tokens.Issue(session)
	if err != nil {
		return AuthenticateResult{}, err
	}
	return AuthenticateResult{Token: token, ExpiresAt: expiresAt, Session: session}, nil
}

func (h *AuthenticateCommandHandler) lookup(ctx context.Context, email string) (*user.User, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storageError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().GetByEmail(ctx, user.NormalizeEmail(email))
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.ErrUnauthenticated
	}
	if err != nil {
		return nil, storageError("get user by email", err)
	}
	return u, nil
}
