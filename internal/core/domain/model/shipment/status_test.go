package shipment_test

import (
	"testing"

	"shipflow/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	testCases := []struct {
		receiver, inspector, approver bool
		expected                      shipment.Status
	}{
		{false, false, false, shipment.PendingShipment},
		{true, false, false, shipment.PendingInspection},
		{true, true, false, shipment.PendingApproval},
		{true, true, true, shipment.Approved},
		{false, true, false, shipment.PendingApproval},
		{false, false, true, shipment.Approved},
		{true, false, true, shipment.Approved},
	}

	for _, tc := range testCases {
		t.Run(tc.expected.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, shipment.DeriveStatus(tc.receiver, tc.inspector, tc.approver))
		})
	}
}

func TestCanEdit(t *testing.T) {
	owners := []shipment.FieldOwner{
		shipment.OwnerBase, shipment.OwnerReceiver, shipment.OwnerInspector, shipment.OwnerApprover,
	}
	expected := map[shipment.Status][]bool{
		shipment.PendingShipment:   {true, true, false, false},
		shipment.PendingInspection: {false, false, true, false},
		shipment.PendingApproval:   {false, false, false, true},
		shipment.Approved:          {false, false, false, false},
		shipment.Unknown:           {false, false, false, false},
	}

	for status, row := range expected {
		for i, owner := range owners {
			assert.Equal(t, row[i], shipment.CanEdit(owner, status), "%s fields in %s", owner, status)
		}
	}
}

func TestStatus_StringAndParse(t *testing.T) {
	for _, status := range []shipment.Status{
		shipment.PendingShipment, shipment.PendingInspection, shipment.PendingApproval, shipment.Approved,
	} {
		parsed, err := shipment.ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	parsed, err := shipment.ParseStatus("pending_approval")
	require.NoError(t, err)
	assert.Equal(t, shipment.PendingApproval, parsed)

	_, err = shipment.ParseStatus("shipped")
	require.Error(t, err)

	assert.Equal(t, "Unknown", shipment.Status(42).String())
	require.Error(t, shipment.Unknown.Validate())
}

func TestStatus_Owner(t *testing.T) {
	owner, ok := shipment.PendingInspection.Owner()
	assert.True(t, ok)
	assert.Equal(t, shipment.Inspector, owner)

	_, ok = shipment.Approved.Owner()
	assert.False(t, ok)
}

func TestParseParty(t *testing.T) {
	for _, p := range shipment.Parties() {
		parsed, err := shipment.ParseParty(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := shipment.ParseParty("courier")
	require.Error(t, err)
}
