// Package user models registration requests and the accounts they become
// once an administrator approves them.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// Status is the registration state. Only approved users can sign in.
type Status int

const (
	Unknown Status = iota
	Pending
	Approved
	Rejected
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Approved:
		return "approved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseStatus maps the persisted form of a status back to its value.
func ParseStatus(s string) (Status, error) {
	for _, status := range []Status{Pending, Approved, Rejected} {
		if status.String() == strings.ToLower(strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a user status", s))
}

// User is a registered person. A new user is Pending with the role they
// asked for; an administrator grants the actual role on approval.
type User struct {
	id            kernel.UUID
	name          string
	email         string
	passwordHash  string
	requestedRole kernel.Role
	role          kernel.Role
	status        Status

	decidedBy       *kernel.UUID
	decidedAt       *time.Time
	rejectionReason string
	createdAt       time.Time

	isConstructed bool
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewUser(
	id kernel.UUID,
	name, email, passwordHash string,
	requestedRole kernel.Role,
	now time.Time,
) (*User, error) {
	u := &User{
		id:            id,
		requestedRole: requestedRole,
		status:        Pending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		u.setProfile(name, email),
		u.setPasswordHash(passwordHash),
		u.setRequestedRole(requestedRole),
	); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreParams carries a persisted user back into the domain.
type RestoreParams struct {
	ID              kernel.UUID
	Name            string
	Email           string
	PasswordHash    string
	RequestedRole   kernel.Role
	Role            kernel.Role
	Status          Status
	DecidedBy       *kernel.UUID
	DecidedAt       *time.Time
	RejectionReason string
	CreatedAt       time.Time
}

func RestoreUser(p RestoreParams) (*User, error) {
	if p.Status < Pending || p.Status > Rejected {
		return nil, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a user status", p.Status))
	}
	return &User{
		id:              p.ID,
		name:            p.Name,
		email:           p.Email,
		passwordHash:    p.PasswordHash,
		requestedRole:   p.RequestedRole,
		role:            p.Role,
		status:          p.Status,
		decidedBy:       p.DecidedBy,
		decidedAt:       p.DecidedAt,
		rejectionReason: p.RejectionReason,
		createdAt:       p.CreatedAt,
		isConstructed:   true,
	}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// Approve activates a pending user with the granted role.
func (u *User) Approve(admin kernel.UUID, role kernel.Role, now time.Time) error {
	if err := errors.Join(u.Validate(), admin.Validate(), role.Validate()); err != nil {
		return err
	}
	if u.status != Pending {
		return errs.NewPermissionError("registration for %s was already %s", u.email, u.status)
	}
	u.decide(admin, now)
	u.role = role
	u.status = Approved
	return nil
}

// Reject closes a pending registration. A reason is required.
func (u *User) Reject(admin kernel.UUID, reason string, now time.Time) error {
	if err := errors.Join(u.Validate(), admin.Validate()); err != nil {
		return err
	}
	if u.status != Pending {
		return errs.NewPermissionError("registration for %s was already %s", u.email, u.status)
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewMissingFieldsError("reason")
	}
	u.decide(admin, now)
	u.rejectionReason = strings.TrimSpace(reason)
	u.status = Rejected
	return nil
}

// CanSignIn fails for registrations that are not approved yet or were rejected.
func (u *User) CanSignIn() error {
	switch u.status {
	case Approved:
		return nil
	case Pending:
		return errs.NewPermissionError("registration is awaiting administrator approval")
	default:
		return errs.NewPermissionError("registration was rejected")
	}
}

func (u *User) decide(admin kernel.UUID, now time.Time) {
	at := now.UTC()
	u.decidedBy = &admin
	u.decidedAt = &at
}

func (u *User) setProfile(name, email string) error {
	var missing []string
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return errs.NewMissingFieldsError(missing...)
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return errs.NewValueIsInvalidErrorWithCause("name", errors.New("name must not contain control characters"))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.name = name
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRequestedRole(role kernel.Role) error {
	if role == kernel.RoleAdmin {
		return errs.NewPermissionError("the admin role cannot be requested at registration")
	}
	return role.Validate()
}

func (u *User) ID() kernel.UUID            { return u.id }
func (u *User) Name() string               { return u.name }
func (u *User) Email() string              { return u.email }
func (u *User) PasswordHash() string       { return u.passwordHash }
func (u *User) RequestedRole() kernel.Role { return u.requestedRole }
func (u *User) Role() kernel.Role          { return u.role }
func (u *User) Status() Status             { return u.status }
func (u *User) DecidedBy() *kernel.UUID    { return u.decidedBy }
func (u *User) DecidedAt() *time.Time      { return u.decidedAt }
func (u *User) RejectionReason() string    { return u.rejectionReason }
func (u *User) CreatedAt() time.Time       { return u.createdAt }
