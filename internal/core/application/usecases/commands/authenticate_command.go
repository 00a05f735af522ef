package commands

import (
	"errors"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var ErrAuthenticateCommandIsNotConstructed = errors.New(
	"AuthenticateCommand must be created via NewAuthenticateCommand constructor",
)

// AuthenticateCommand exchanges credentials for a session token bound to
// the chosen environment.
type AuthenticateCommand struct { //nolint:recvcheck //using for validation
	email       string
	password    string
	environment kernel.Environment

	guard guard.ConstructorGuard
}

func NewAuthenticateCommand(email, password string, environment kernel.Environment) (AuthenticateCommand, error) {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return AuthenticateCommand{}, errs.NewMissingFieldsError(missing...)
	}
	if err := environment.Validate(); err != nil {
		return AuthenticateCommand{}, err
	}

	return AuthenticateCommand{
		email:       email,
		password:    password,
		environment: environment,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AuthenticateCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateCommandIsNotConstructed)
}

func (c AuthenticateCommand) Email() string                   { return c.email }
func (c AuthenticateCommand) Password() string                { return c.password }
func (c AuthenticateCommand) Environment() kernel.Environment { return c.environment }
