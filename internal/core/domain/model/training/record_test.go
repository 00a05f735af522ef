package training_test

import (
	"testing"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/training"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

func signoff(t *testing.T, name string) kernel.Signoff {
	t.Helper()
	s, err := kernel.NewSignoff(name, []byte("sig:"+name), now)
	require.NoError(t, err)
	return s
}

func newRecord(t *testing.T, trainee kernel.UUID) *training.Record {
	t.Helper()
	r, err := training.NewRecord(trainee, "sop-014", "Line clearance", now, signoff(t, "Tess"), now)
	require.NoError(t, err)
	require.NoError(t, r.AssignSequence(3))
	return r
}

func TestNewRecord(t *testing.T) {
	t.Run("should create a pending record", func(t *testing.T) {
		r := newRecord(t, kernel.NewUUID())

		assert.Equal(t, "TRN-000003", r.ID())
		assert.Equal(t, "SOP-014", r.SOPCode())
		assert.Equal(t, training.Pending, r.Status())
		assert.Nil(t, r.Reviewer())
	})

	t.Run("should list every missing field", func(t *testing.T) {
		_, err := training.NewRecord(kernel.NewUUID(), "", "", time.Time{}, kernel.Signoff{}, now)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"sopCode", "sopTitle", "trainingDate", "trainee.name", "trainee.signature"}, vErr.Fields)
	})
}

func TestRecord_Review(t *testing.T) {
	trainee := kernel.NewUUID()
	manager := kernel.NewUUID()

	t.Run("approval sets the status", func(t *testing.T) {
		r := newRecord(t, trainee)

		require.NoError(t, r.Review(manager, training.Approved, signoff(t, "Mo"), ""))

		assert.Equal(t, training.Approved, r.Status())
		assert.True(t, r.Reviewer().IsEqual(manager))
	})

	t.Run("cannot be reviewed twice", func(t *testing.T) {
		r := newRecord(t, trainee)
		require.NoError(t, r.Review(manager, training.Rejected, signoff(t, "Mo"), "retrain on step 4"))

		err := r.Review(manager, training.Approved, signoff(t, "Mo"), "")

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Equal(t, training.Rejected, r.Status())
	})

	t.Run("trainee cannot review their own record", func(t *testing.T) {
		r := newRecord(t, trainee)

		err := r.Review(trainee, training.Approved, signoff(t, "Tess"), "")

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("rejection requires notes", func(t *testing.T) {
		r := newRecord(t, trainee)

		err := r.Review(manager, training.Rejected, signoff(t, "Mo"), "  ")

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"notes"}, vErr.Fields)
		assert.Equal(t, training.Pending, r.Status())
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		r := newRecord(t, trainee)

		require.ErrorIs(t, r.Review(manager, training.Pending, signoff(t, "Mo"), ""), errs.ErrValueIsInvalid)
	})
}

func TestRestoreRecord(t *testing.T) {
	_, err := training.RestoreRecord(training.RestoreParams{
		ID:             "TRN-000001",
		SequenceNumber: 1,
		ReviewSignoff:  signoff(t, "Mo"),
		Decision:       training.Pending,
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	r, err := training.RestoreRecord(training.RestoreParams{ID: "TRN-000002", SequenceNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, training.Pending, r.Status())
}

func TestParseStatus(t *testing.T) {
	s, err := training.ParseStatus("rejected")
	require.NoError(t, err)
	assert.Equal(t, training.Rejected, s)

	_, err = training.ParseStatus("unknown")
	require.Error(t, err)
}
