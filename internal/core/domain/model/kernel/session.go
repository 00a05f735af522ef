package kernel

import (
	"errors"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Session is the caller of a use case: who they are, what role they hold and
// which environment their reads and writes go to. It is decoded from the
// bearer token by the HTTP layer and passed explicitly into every command and
// query; nothing in the application reads the current user from ambient state.
//
// Example:
//
//	session, err := kernel.NewSession(userID, kernel.RoleShipping, kernel.EnvironmentTest)
//	if err != nil {
//	    return err
//	}
//	cmd, err := commands.NewDeleteShipmentCommand(session, "SHP-000042")
type Session struct {
	identity    UUID
	email       string
	role        Role
	environment Environment

	isConstructed bool
}

func NewSession(identity UUID, role Role, environment Environment) (Session, error) {
	s := Session{isConstructed: true}
	if err := errors.Join(
		identity.Validate(),
		role.Validate(),
		environment.Validate(),
	); err != nil {
		return Session{}, err
	}
	s.identity = identity
	s.role = role
	s.environment = environment
	return s, nil
}

// WithEmail returns a copy carrying the user's email, used for display and
// audit fields only.
func (s Session) WithEmail(email string) Session {
	s.email = email
	return s
}

func (s Session) Validate() error {
	if !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

func (s Session) Identity() UUID {
	return s.identity
}

func (s Session) Email() string {
	return s.email
}

func (s Session) Role() Role {
	return s.role
}

func (s Session) Environment() Environment {
	return s.environment
}

func (s Session) IsTestEnvironment() bool {
	return s.environment == EnvironmentTest
}

// HasRole reports whether the session holds any of the given roles.
// Admins hold every role.
func (s Session) HasRole(roles ...Role) bool {
	if s.role == RoleAdmin {
		return true
	}
	for _, r := range roles {
		if s.role == r {
			return true
		}
	}
	return false
}

// systemIdentity is the identity scheduled jobs and operator commands act as.
var systemIdentity = MustUUIDFromString("00000000-0000-0000-0000-000000000001")

// SystemSession is an admin session for work no user started, such as
// scheduled reports and command-line imports.
func SystemSession(environment Environment) (Session, error) {
	s, err := NewSession(systemIdentity, RoleAdmin, environment)
	if err != nil {
		return Session{}, err
	}
	return s.WithEmail("system"), nil
}
