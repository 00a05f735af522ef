package errs_test

import (
	"errors"
	"testing"

	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("shipmentId", "SHP-000123")

		assert.Equal(t, "shipmentId", err.ParamName)
		assert.Equal(t, "SHP-000123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: SHP-000123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("shipmentId", "SHP-000123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: shipmentId, ID is: SHP-000123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("sequence", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsError("email", "jo@example.com")

	assert.Equal(t, "object already exists: email jo@example.com", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("remainingQuantity", 150, 0, 120)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t,
			"value is invalid: 150 is remainingQuantity, min value is 0, max value is 120",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredErrorWithCause("username", errors.New("missing required field"))

	assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestValidationError(t *testing.T) {
	t.Run("lists every missing field", func(t *testing.T) {
		err := errs.NewMissingFieldsError("itemName", "lotNumber")

		assert.Equal(t, []string{"itemName", "lotNumber"}, err.Fields)
		assert.Equal(t, "validation failed: missing required fields: itemName, lotNumber", err.Error())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("reason only", func(t *testing.T) {
		err := errs.NewValidationError("signature is empty")
		assert.Equal(t, "validation failed: signature is empty", err.Error())
	})

	t.Run("extracted with errors.As through joins", func(t *testing.T) {
		joined := errors.Join(errors.New("other"), errs.NewMissingFieldsError("quantity"))

		var vErr *errs.ValidationError
		require.ErrorAs(t, joined, &vErr)
		assert.Equal(t, []string{"quantity"}, vErr.Fields)
	})
}

func TestPermissionError(t *testing.T) {
	err := errs.NewPermissionError("cannot edit %s fields while status is %s", "approver", "Pending Inspection")

	assert.Equal(t,
		"permission denied: cannot edit approver fields while status is Pending Inspection",
		err.Error())
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewStorageError("save shipment", cause)

	assert.Equal(t, "storage unavailable: save shipment (cause: connection refused)", err.Error())
	require.ErrorIs(t, err, errs.ErrStorage)
	require.ErrorIs(t, err, cause)
}

func TestSequenceConflictError(t *testing.T) {
	err := errs.NewSequenceConflictError("shipment", 7, nil)

	assert.Equal(t, "sequence conflict: shipment sequence 7 is already taken", err.Error())
	require.ErrorIs(t, err, errs.ErrSequenceConflict)
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "validation failed", errs.ErrValidation.Error())
	assert.Equal(t, "permission denied", errs.ErrPermissionDenied.Error())
}
