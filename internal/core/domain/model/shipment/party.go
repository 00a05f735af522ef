package shipment

import (
	"fmt"
	"strings"

	"shipflow/internal/pkg/errs"
)

// Party is one of the three signers of a shipment record, in signing order.
type Party int

const (
	Receiver Party = iota + 1
	Inspector
	Approver
)

func Parties() []Party {
	return []Party{Receiver, Inspector, Approver}
}

func ParseParty(s string) (Party, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "receiver":
		return Receiver, nil
	case "inspector":
		return Inspector, nil
	case "approver":
		return Approver, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("party is invalid", fmt.Errorf("%q is not a party", s))
	}
}

func (p Party) Validate() error {
	if p < Receiver || p > Approver {
		return errs.NewValueIsInvalidErrorWithCause("party is invalid", fmt.Errorf("%d is not a party", p))
	}
	return nil
}

func (p Party) String() string {
	switch p {
	case Receiver:
		return "receiver"
	case Inspector:
		return "inspector"
	case Approver:
		return "approver"
	default:
		return "unknown"
	}
}

// Owner returns the field block this party writes.
func (p Party) Owner() FieldOwner {
	switch p {
	case Receiver:
		return OwnerReceiver
	case Inspector:
		return OwnerInspector
	case Approver:
		return OwnerApprover
	default:
		return 0
	}
}

// FieldOwner groups the fields of a shipment record by who may write them.
type FieldOwner int

const (
	// OwnerBase covers item details, quantities, dates, damage and the attachment.
	OwnerBase FieldOwner = iota + 1
	OwnerReceiver
	OwnerInspector
	OwnerApprover
)

func (o FieldOwner) String() string {
	switch o {
	case OwnerBase:
		return "base"
	case OwnerReceiver:
		return "receiver"
	case OwnerInspector:
		return "inspector"
	case OwnerApprover:
		return "approver"
	default:
		return "unknown"
	}
}

// CanEdit is the field-edit permission table:
//
//	state              base  receiver  inspector  approver
//	PendingShipment    yes   yes       no         no
//	PendingInspection  no    no        yes        no
//	PendingApproval    no    no        no         yes
//	Approved           no    no        no         no
//
// Base fields follow the earliest unsigned party, so they freeze as soon as
// the receiver signs.
func CanEdit(owner FieldOwner, status Status) bool {
	switch status {
	case PendingShipment:
		return owner == OwnerBase || owner == OwnerReceiver
	case PendingInspection:
		return owner == OwnerInspector
	case PendingApproval:
		return owner == OwnerApprover
	default:
		return false
	}
}
