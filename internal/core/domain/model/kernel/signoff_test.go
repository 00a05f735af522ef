package kernel_test

import (
	"testing"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignoff(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	t.Run("should stamp signature with the given time", func(t *testing.T) {
		s, err := kernel.NewSignoff("  Dana Reyes ", []byte("png"), now)

		require.NoError(t, err)
		assert.Equal(t, "Dana Reyes", s.Name())
		assert.Equal(t, []byte("png"), s.Signature())
		require.NotNil(t, s.SignedAt())
		assert.Equal(t, now, *s.SignedAt())
		assert.True(t, s.IsSigned())
	})

	t.Run("should list every missing field", func(t *testing.T) {
		_, err := kernel.NewSignoff("", nil, now)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"name", "signature"}, vErr.Fields)
	})
}

func TestSignoff_SignAndUnsign(t *testing.T) {
	now := time.Now()
	s := kernel.Signoff{}.WithName("Inspector Gadget")

	_, err := s.Sign(nil, now)
	require.ErrorIs(t, err, errs.ErrValidation)

	signed, err := s.Sign([]byte{1, 2, 3}, now)
	require.NoError(t, err)
	assert.False(t, s.IsSigned(), "receiver is a value and stays unsigned")
	assert.True(t, signed.IsSigned())

	cleared := signed.Unsign()
	assert.False(t, cleared.IsSigned())
	assert.Nil(t, cleared.SignedAt())
	assert.Equal(t, "Inspector Gadget", cleared.Name())
}

func TestSignoff_SignatureIsCopied(t *testing.T) {
	blob := []byte("sig")
	s, err := kernel.NewSignoff("A", blob, time.Now())
	require.NoError(t, err)

	blob[0] = 'X'
	out := s.Signature()
	out[1] = 'Y'

	assert.Equal(t, []byte("sig"), s.Signature())
}

func TestRestoreSignoff(t *testing.T) {
	at := time.Now()

	t.Run("signature without date is rejected", func(t *testing.T) {
		_, err := kernel.RestoreSignoff("A", []byte("sig"), nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("date without signature is rejected", func(t *testing.T) {
		_, err := kernel.RestoreSignoff("A", nil, &at)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("name only is a valid unsigned signoff", func(t *testing.T) {
		s, err := kernel.RestoreSignoff("A", nil, nil)
		require.NoError(t, err)
		assert.False(t, s.IsSigned())
		assert.False(t, s.IsEmpty())
	})
}
