package shipment

import (
	"fmt"
	"strings"

	"shipflow/internal/pkg/errs"
)

// Status is the workflow state of a shipment record.
//
// State transitions (forward by signing, backward by removing a signature):
//
//	PendingShipment <──> PendingInspection <──> PendingApproval ──> Approved
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// PendingShipment is the state of a record nobody has signed yet.
	// Only the receiver block and the base fields are editable.
	PendingShipment

	// PendingInspection follows the receiver's signature.
	PendingInspection

	// PendingApproval follows the inspector's signature.
	PendingApproval

	// Approved is final: the record can no longer change.
	Approved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		PendingShipment:   "Pending Shipment",
		PendingInspection: "Pending Inspection",
		PendingApproval:   "Pending Approval",
		Approved:          "Approved",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingShipment:   "Pending Shipment",
		PendingInspection: "Pending Inspection",
		PendingApproval:   "Pending Approval",
		Approved:          "Approved",
	}
}

// ParseStatus accepts the display form ("Pending Inspection") as well as the
// compact form used in query strings ("pendinginspection", "pending_inspection").
func ParseStatus(s string) (Status, error) {
	needle := normalizeStatus(s)
	for status, str := range getValidStatusStrings() {
		if normalizeStatus(str) == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func normalizeStatus(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Owner returns the party whose block is writable in this state, and false
// for Approved and invalid states.
func (s Status) Owner() (Party, bool) {
	switch s {
	case PendingShipment:
		return Receiver, true
	case PendingInspection:
		return Inspector, true
	case PendingApproval:
		return Approver, true
	default:
		return 0, false
	}
}

// DeriveStatus is the transition function of the workflow. The highest
// priority signature present wins: approver, then inspector, then receiver.
func DeriveStatus(receiverSigned, inspectorSigned, approverSigned bool) Status {
	switch {
	case approverSigned:
		return Approved
	case inspectorSigned:
		return PendingApproval
	case receiverSigned:
		return PendingInspection
	default:
		return PendingShipment
	}
}
