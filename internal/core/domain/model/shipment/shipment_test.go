package shipment_test

import (
	"errors"
	"testing"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/shipment"
	"shipflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now          = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	shipmentDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T {
	return &v
}

func validBase() shipment.BaseFields {
	return shipment.BaseFields{
		ShipmentDate: shipmentDate,
		ItemNumber:   "AB12",
		ItemName:     "Citric acid",
		LotNumber:    "XY99",
		Quantity:     decimal.NewFromInt(40),
		Unit:         "kg",
		Manufacturer: "Acme",
	}
}

func sign(name string) *shipment.PartyChanges {
	return &shipment.PartyChanges{Name: ptr(name), Signature: []byte("sig:" + name)}
}

// savedAt returns a record that has been persisted in the given status.
func savedAt(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()

	s, err := shipment.PrepareDraft(kernel.NewUUID(), shipment.Changes{
		ShipmentDate: ptr(shipmentDate),
		ItemNumber:   ptr("AB12"),
		ItemName:     ptr("Citric acid"),
		LotNumber:    ptr("XY99"),
		Quantity:     ptr(decimal.NewFromInt(40)),
		Receiver:     sign("Rae"),
	}, now)
	require.NoError(t, err)
	require.NoError(t, s.AssignSequence(1))
	s.MarkSaved()

	if status >= shipment.PendingApproval {
		require.NoError(t, s.Apply(shipment.Changes{Inspector: sign("Ian")}, now))
		s.MarkSaved()
	}
	if status == shipment.Approved {
		require.NoError(t, s.Apply(shipment.Changes{Approver: sign("Ada")}, now))
		s.MarkSaved()
	}
	require.Equal(t, status, s.Status())
	return s
}

func assertDatesFollowSignatures(t *testing.T, s *shipment.Shipment) {
	t.Helper()
	for _, p := range shipment.Parties() {
		signoff := s.Signoff(p)
		assert.Equal(t, signoff.IsSigned(), signoff.SignedAt() != nil, "%s date must follow signature", p)
	}
	assert.Equal(t,
		shipment.DeriveStatus(
			s.Signoff(shipment.Receiver).IsSigned(),
			s.Signoff(shipment.Inspector).IsSigned(),
			s.Signoff(shipment.Approver).IsSigned()),
		s.Status())
}

func TestNewDraft(t *testing.T) {
	t.Run("should compute code and start pending shipment", func(t *testing.T) {
		createdBy := kernel.NewUUID()

		s, err := shipment.NewDraft(createdBy, validBase(), now)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.IsDraft())
		assert.Empty(t, s.ID())
		assert.Equal(t, "AB12-XY99-20240315", s.Code())
		assert.Equal(t, shipment.PendingShipment, s.Status())
		assert.True(t, s.CreatedBy().IsEqual(createdBy))
		assert.True(t, s.Base().RemainingQuantity.Decimal.Equal(decimal.NewFromInt(40)))
	})

	t.Run("should list every missing required base field", func(t *testing.T) {
		base := validBase()
		base.ItemName = ""
		base.LotNumber = "  "
		base.Quantity = decimal.Zero

		_, err := shipment.NewDraft(kernel.NewUUID(), base, now)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"itemName", "lotNumber", "quantity"}, vErr.Fields)
	})

	t.Run("should reject remaining quantity above quantity", func(t *testing.T) {
		base := validBase()
		base.RemainingQuantity = decimal.NewNullDecimal(decimal.NewFromInt(41))

		_, err := shipment.NewDraft(kernel.NewUUID(), base, now)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "remainingQuantity")
	})

	t.Run("zero value shipment is not constructed", func(t *testing.T) {
		var s shipment.Shipment
		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, s.Validate())
	})
}

func TestPrepareDraft(t *testing.T) {
	t.Run("missing item name and lot number are both reported", func(t *testing.T) {
		_, err := shipment.PrepareDraft(kernel.NewUUID(), shipment.Changes{
			ShipmentDate: ptr(shipmentDate),
			ItemNumber:   ptr("AB12"),
			Quantity:     ptr(decimal.NewFromInt(5)),
			Receiver:     sign("Rae"),
		}, now)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"itemName", "lotNumber"}, vErr.Fields)
	})

	t.Run("receiver block is required with the base fields", func(t *testing.T) {
		_, err := shipment.PrepareDraft(kernel.NewUUID(), shipment.Changes{
			ItemNumber: ptr("AB12"),
		}, now)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t,
			[]string{"shipmentDate", "itemName", "lotNumber", "quantity", "receiver.name", "receiver.signature"},
			vErr.Fields)
	})

	t.Run("inspector fields cannot be written on a new record", func(t *testing.T) {
		_, err := shipment.PrepareDraft(kernel.NewUUID(), shipment.Changes{
			Receiver:  sign("Rae"),
			Inspector: sign("Ian"),
		}, now)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Contains(t, err.Error(), "cannot edit inspector fields")
	})

	t.Run("complete submission signs as receiver", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		assert.Equal(t, "SHP-000001", s.ID())
		require.NotNil(t, s.Signoff(shipment.Receiver).SignedAt())
		assert.Equal(t, now, *s.Signoff(shipment.Receiver).SignedAt())
		assertDatesFollowSignatures(t, s)
	})
}

func TestHappyPath(t *testing.T) {
	draft, err := shipment.NewDraft(kernel.NewUUID(), validBase(), now)
	require.NoError(t, err)
	assert.Equal(t, "AB12-XY99-20240315", draft.Code())

	require.NoError(t, draft.Apply(shipment.Changes{Receiver: sign("Rae")}, now))
	require.NoError(t, draft.ValidateForSubmit())
	require.NoError(t, draft.AssignSequence(7))
	draft.MarkSaved()
	assert.Equal(t, shipment.PendingInspection, draft.Status())

	require.NoError(t, draft.Apply(shipment.Changes{Inspector: &shipment.PartyChanges{Name: ptr("Ian")}}, now))
	require.NoError(t, draft.AttachSignature(shipment.Inspector, []byte("ian"), now))
	require.NoError(t, draft.ValidateForSubmit())
	draft.MarkSaved()
	assert.Equal(t, shipment.PendingApproval, draft.Status())

	require.NoError(t, draft.Apply(shipment.Changes{Approver: &shipment.PartyChanges{Name: ptr("Ada")}}, now))
	require.NoError(t, draft.AttachSignature(shipment.Approver, []byte("ada"), now))
	require.NoError(t, draft.ValidateForSubmit())
	draft.MarkSaved()
	assert.Equal(t, shipment.Approved, draft.Status())
	assertDatesFollowSignatures(t, draft)

	writes := []shipment.Changes{
		{ItemName: ptr("Other")},
		{Quantity: ptr(decimal.NewFromInt(1))},
		{Damage: &shipment.Damage{ProductDamaged: true}},
		{Receiver: &shipment.PartyChanges{Name: ptr("X")}},
		{Inspector: &shipment.PartyChanges{Name: ptr("X")}},
		{Approver: &shipment.PartyChanges{Name: ptr("X")}},
	}
	for _, w := range writes {
		require.ErrorIs(t, draft.Apply(w, now), errs.ErrPermissionDenied)
	}
	for _, p := range shipment.Parties() {
		require.ErrorIs(t, draft.AttachSignature(p, []byte("again"), now), errs.ErrPermissionDenied)
		require.ErrorIs(t, draft.RemoveSignature(p, now), errs.ErrPermissionDenied)
	}
	require.ErrorIs(t, draft.ValidateForSubmit(), errs.ErrPermissionDenied)
	assert.Equal(t, "SHP-000007", draft.ID())
}

func TestApply_Permissions(t *testing.T) {
	t.Run("approver name cannot be written while pending inspection", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		err := s.Apply(shipment.Changes{Approver: &shipment.PartyChanges{Name: ptr("Ada")}}, now)

		var pErr *errs.PermissionError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, "cannot edit approver fields while status is Pending Inspection", pErr.Rule)
		assert.Empty(t, s.Signoff(shipment.Approver).Name())
	})

	t.Run("base fields freeze once the receiver signed", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		err := s.Apply(shipment.Changes{LotNumber: ptr("NEW1")}, now)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Equal(t, "AB12-XY99-20240315", s.Code())
	})

	t.Run("every violation is reported and nothing is written", func(t *testing.T) {
		s := savedAt(t, shipment.PendingApproval)

		err := s.Apply(shipment.Changes{
			ItemName:  ptr("Other"),
			Receiver:  &shipment.PartyChanges{Name: ptr("X")},
			Approver:  &shipment.PartyChanges{Name: ptr("Ada")},
			Inspector: &shipment.PartyChanges{Name: ptr("Y")},
		}, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot edit base fields")
		assert.Contains(t, err.Error(), "cannot edit receiver fields")
		assert.Contains(t, err.Error(), "cannot edit inspector fields")
		assert.NotContains(t, err.Error(), "approver fields")
		assert.Empty(t, s.Signoff(shipment.Approver).Name())
		assert.Equal(t, "Citric acid", s.Base().ItemName)
	})

	t.Run("draft opens receiver fields even after the receiver signed", func(t *testing.T) {
		s, err := shipment.NewDraft(kernel.NewUUID(), validBase(), now)
		require.NoError(t, err)
		require.NoError(t, s.AttachSignature(shipment.Receiver, []byte("r"), now))

		require.NoError(t, s.Apply(shipment.Changes{
			ItemName: ptr("Renamed"),
			Receiver: &shipment.PartyChanges{Name: ptr("Rae")},
		}, now))
		assert.Equal(t, shipment.PendingInspection, s.Status())

		err = s.Apply(shipment.Changes{Inspector: &shipment.PartyChanges{Name: ptr("Ian")}}, now)
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("changing lot number on a draft recomputes the code", func(t *testing.T) {
		s, err := shipment.NewDraft(kernel.NewUUID(), validBase(), now)
		require.NoError(t, err)

		require.NoError(t, s.Apply(shipment.Changes{LotNumber: ptr("zz-01")}, now))

		assert.Equal(t, "AB12-ZZ01-20240315", s.Code())
	})

	t.Run("empty signature in a patch is a validation error", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		err := s.Apply(shipment.Changes{Inspector: &shipment.PartyChanges{Signature: []byte{}}}, now)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, shipment.PendingInspection, s.Status())
	})
}

func TestApply_RemainingQuantityFollowsQuantity(t *testing.T) {
	s, err := shipment.NewDraft(kernel.NewUUID(), validBase(), now)
	require.NoError(t, err)

	require.NoError(t, s.Apply(shipment.Changes{Quantity: ptr(decimal.NewFromInt(50))}, now))
	assert.True(t, s.Base().RemainingQuantity.Decimal.Equal(decimal.NewFromInt(50)))

	require.NoError(t, s.Apply(shipment.Changes{RemainingQuantity: ptr(decimal.NewFromInt(20))}, now))
	require.NoError(t, s.Apply(shipment.Changes{Quantity: ptr(decimal.NewFromInt(60))}, now))
	assert.True(t, s.Base().RemainingQuantity.Decimal.Equal(decimal.NewFromInt(20)))

	err = s.Apply(shipment.Changes{RemainingQuantity: ptr(decimal.NewFromInt(-1))}, now)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestValidateForSubmit(t *testing.T) {
	t.Run("inspector must provide name and signature", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		err := s.ValidateForSubmit()

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"inspector.name", "inspector.signature"}, vErr.Fields)
	})

	t.Run("a draft requires the receiver block", func(t *testing.T) {
		s, err := shipment.NewDraft(kernel.NewUUID(), validBase(), now)
		require.NoError(t, err)

		var vErr *errs.ValidationError
		require.ErrorAs(t, s.ValidateForSubmit(), &vErr)
		assert.Equal(t, []string{"receiver.name", "receiver.signature"}, vErr.Fields)
	})
}

func TestAttachSignature(t *testing.T) {
	t.Run("empty blob is a validation error", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		err := s.AttachSignature(shipment.Inspector, nil, now)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.False(t, s.Signoff(shipment.Inspector).IsSigned())
	})

	t.Run("out of turn party is denied", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		err := s.AttachSignature(shipment.Approver, []byte("a"), now)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Equal(t, shipment.PendingInspection, s.Status())
	})

	t.Run("signing stamps the date", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)
		later := now.Add(2 * time.Hour)

		require.NoError(t, s.AttachSignature(shipment.Inspector, []byte("i"), later))

		assert.Equal(t, later, *s.Signoff(shipment.Inspector).SignedAt())
		assert.Equal(t, shipment.PendingApproval, s.Status())
		assertDatesFollowSignatures(t, s)
	})

	t.Run("a signature in a patch signs the same way", func(t *testing.T) {
		attached := savedAt(t, shipment.PendingInspection)
		applied := savedAt(t, shipment.PendingInspection)
		later := now.Add(time.Hour)

		require.NoError(t, attached.AttachSignature(shipment.Inspector, []byte("sig:Ian"), later))
		require.NoError(t, applied.Apply(shipment.Changes{
			Inspector: &shipment.PartyChanges{Signature: []byte("sig:Ian")},
		}, later))

		assert.Equal(t, attached.Signoff(shipment.Inspector), applied.Signoff(shipment.Inspector))
		assert.Equal(t, attached.Status(), applied.Status())
		assert.Equal(t, attached.UpdatedAt(), applied.UpdatedAt())
	})
}

func TestRemoveSignature(t *testing.T) {
	t.Run("receiver signature cannot be removed while inspector signed", func(t *testing.T) {
		s := savedAt(t, shipment.PendingApproval)

		err := s.RemoveSignature(shipment.Receiver, now)

		var pErr *errs.PermissionError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, "cannot remove receiver signature while inspector has signed", pErr.Rule)
	})

	t.Run("latest signature is removed and status moves back", func(t *testing.T) {
		s := savedAt(t, shipment.PendingApproval)

		require.NoError(t, s.RemoveSignature(shipment.Inspector, now))

		assert.Equal(t, shipment.PendingInspection, s.Status())
		assert.Nil(t, s.Signoff(shipment.Inspector).SignedAt())
		assert.Equal(t, "Ian", s.Signoff(shipment.Inspector).Name())
		assertDatesFollowSignatures(t, s)

		require.NoError(t, s.RemoveSignature(shipment.Receiver, now))
		assert.Equal(t, shipment.PendingShipment, s.Status())
	})

	t.Run("removing an absent signature is a validation error", func(t *testing.T) {
		s := savedAt(t, shipment.PendingInspection)

		err := s.RemoveSignature(shipment.Approver, now)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestAssignSequence(t *testing.T) {
	s := savedAt(t, shipment.PendingInspection)

	err := s.AssignSequence(2)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, int64(1), s.SequenceNumber())
	assert.Equal(t, "SHP-000001", s.ID())
}

func TestRestoreShipment(t *testing.T) {
	receiver, err := kernel.NewSignoff("Rae", []byte("r"), now)
	require.NoError(t, err)
	inspector, err := kernel.NewSignoff("Ian", []byte("i"), now)
	require.NoError(t, err)

	t.Run("status and code are derived again", func(t *testing.T) {
		s, err := shipment.RestoreShipment(shipment.RestoreParams{
			ID:             "SHP-000003",
			SequenceNumber: 3,
			Base:           validBase(),
			Receiver:       receiver,
			Inspector:      inspector,
			CreatedBy:      kernel.NewUUID(),
			CreatedAt:      now,
			UpdatedAt:      now,
		})

		require.NoError(t, err)
		assert.Equal(t, shipment.PendingApproval, s.Status())
		assert.Equal(t, shipment.PendingApproval, s.SavedStatus())
		assert.Equal(t, "AB12-XY99-20240315", s.Code())
		assert.False(t, s.IsDraft())
	})

	t.Run("id must match sequence", func(t *testing.T) {
		_, err := shipment.RestoreShipment(shipment.RestoreParams{ID: "SHP-000004", SequenceNumber: 3, Base: validBase()})

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})
}
