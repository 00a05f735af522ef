package commands

import (
	"errors"
	"strings"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

const minPasswordLength = 8

// RegisterUserCommand is an unauthenticated request for an account.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	name          string
	email         string
	password      string
	requestedRole kernel.Role

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(name, email, password string, requestedRole kernel.Role) (RegisterUserCommand, error) {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return RegisterUserCommand{}, errs.NewMissingFieldsError(missing...)
	}
	if len(password) < minPasswordLength {
		return RegisterUserCommand{}, errs.NewValidationError("password must be at least 8 characters")
	}

	return RegisterUserCommand{
		name:          name,
		email:         email,
		password:      password,
		requestedRole: requestedRole,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Name() string               { return c.name }
func (c RegisterUserCommand) Email() string              { return c.email }
func (c RegisterUserCommand) Password() string           { return c.password }
func (c RegisterUserCommand) RequestedRole() kernel.Role { return c.requestedRole }
