package kernel

import (
	"fmt"
	"strings"

	"shipflow/internal/pkg/errs"
)

// Role decides which dashboards and operations a user can reach.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleShipping
	RoleTraining
	RoleManager
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleAdmin:    "admin",
		RoleShipping: "shipping",
		RoleTraining: "training",
		RoleManager:  "manager",
	}
}

// ParseRole maps the persisted or token form of a role back to its value.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == needle {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleManager {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Environment selects the database a session reads from and writes to.
type Environment int

const (
	EnvironmentUnknown Environment = iota
	EnvironmentProduction
	EnvironmentTest
)

func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "production", "prod":
		return EnvironmentProduction, nil
	case "test":
		return EnvironmentTest, nil
	default:
		return EnvironmentUnknown, errs.NewValueIsInvalidErrorWithCause(
			"environment is invalid", fmt.Errorf("%q is not a known environment", s))
	}
}

func (e Environment) Validate() error {
	if e != EnvironmentProduction && e != EnvironmentTest {
		return errs.NewValueIsInvalidErrorWithCause("environment is invalid", fmt.Errorf("%d is not a valid environment", e))
	}
	return nil
}

func (e Environment) String() string {
	switch e {
	case EnvironmentProduction:
		return "production"
	case EnvironmentTest:
		return "test"
	default:
		return "unknown"
	}
}
