package user_test

import (
	"testing"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/user"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Jo Park", "  Jo@Example.com ", "$argon2id$hash", kernel.RoleShipping, now)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("should create a pending user with a normalized email", func(t *testing.T) {
		u := newPending(t)

		assert.Equal(t, "jo@example.com", u.Email())
		assert.Equal(t, user.Pending, u.Status())
		assert.Equal(t, kernel.RoleShipping, u.RequestedRole())
		assert.Equal(t, kernel.RoleUnknown, u.Role())
	})

	t.Run("should join every problem", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, "", "", "", kernel.RoleUnknown, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "missing required fields: name, email")
		assert.Contains(t, err.Error(), "value is required: password")
		assert.Contains(t, err.Error(), "role is invalid")
	})

	t.Run("should reject malformed email", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Jo", "not-an-email", "h", kernel.RoleTraining, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a name spanning lines", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "x\r\nContent-Type: text/html", "jo@example.com", "h",
			kernel.RoleTraining, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("admin cannot be requested", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Jo", "jo@example.com", "h", kernel.RoleAdmin, now)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}

func TestUser_Decisions(t *testing.T) {
	admin := kernel.NewUUID()

	t.Run("pending user cannot sign in until approved", func(t *testing.T) {
		u := newPending(t)
		require.ErrorIs(t, u.CanSignIn(), errs.ErrPermissionDenied)

		require.NoError(t, u.Approve(admin, kernel.RoleManager, now))

		require.NoError(t, u.CanSignIn())
		assert.Equal(t, kernel.RoleManager, u.Role())
		assert.True(t, u.DecidedBy().IsEqual(admin))
	})

	t.Run("only pending users can be decided", func(t *testing.T) {
		u := newPending(t)
		require.NoError(t, u.Reject(admin, "unknown requester", now))

		require.ErrorIs(t, u.Approve(admin, kernel.RoleShipping, now), errs.ErrPermissionDenied)
		require.ErrorIs(t, u.CanSignIn(), errs.ErrPermissionDenied)
		assert.Equal(t, "unknown requester", u.RejectionReason())
	})

	t.Run("rejection needs a reason", func(t *testing.T) {
		u := newPending(t)

		require.ErrorIs(t, u.Reject(admin, "", now), errs.ErrValidation)
		assert.Equal(t, user.Pending, u.Status())
	})
}

func TestParseStatus(t *testing.T) {
	s, err := user.ParseStatus("Approved")
	require.NoError(t, err)
	assert.Equal(t, user.Approved, s)

	_, err = user.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
