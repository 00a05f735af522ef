package batch_test

import (
	"testing"
	"time"

	"shipflow/internal/core/domain/model/batch"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm(t *testing.T) {
	now := time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC)
	operator, err := kernel.NewSignoff("Olu", []byte("o"), now)
	require.NoError(t, err)

	t.Run("should number the form from the DP sequence", func(t *testing.T) {
		f, err := batch.NewForm(kernel.NewUUID(), batch.Fields{
			FormType:        batch.Filling,
			ItemNumber:      "fg-100",
			ProductName:     "Lemon drink",
			LotNumber:       "L77",
			BatchQuantity:   decimal.RequireFromString("1250.5"),
			ManufactureDate: now,
			Operator:        operator,
		}, now)
		require.NoError(t, err)

		require.NoError(t, f.AssignSequence(12))

		assert.Equal(t, "DP-00012", f.ID())
		assert.Equal(t, "FG-100", f.Fields().ItemNumber)
		require.Error(t, f.AssignSequence(13))
	})

	t.Run("should list every missing field", func(t *testing.T) {
		_, err := batch.NewForm(kernel.NewUUID(), batch.Fields{FormType: batch.Blending}, now)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{
			"itemNumber", "productName", "lotNumber", "batchQuantity", "manufactureDate",
			"operator.name", "operator.signature",
		}, vErr.Fields)
	})

	t.Run("should reject an unknown form type", func(t *testing.T) {
		_, err := batch.ParseFormType("mixing")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		ft, err := batch.ParseFormType("Packaging")
		require.NoError(t, err)
		assert.Equal(t, batch.Packaging, ft)
	})
}
