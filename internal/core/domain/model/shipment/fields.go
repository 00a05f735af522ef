package shipment

import (
	"strings"
	"time"

	"shipflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Damage records what the receiver found on arrival.
type Damage struct {
	PackagingDamaged bool
	ProductDamaged   bool
	Notes            string
}

// BaseFields are the non-party fields of a shipment record. They are
// editable only while nobody has signed.
type BaseFields struct {
	ShipmentDate      time.Time
	ItemNumber        string
	ItemName          string
	LotNumber         string
	Quantity          decimal.Decimal
	RemainingQuantity decimal.NullDecimal
	Unit              string
	Manufacturer      string
	Vendor            string
	Transportation    string
	BillNumber        string
	ExpiryDate        *time.Time
	Damage            Damage
	AttachmentRef     string
}

func (b BaseFields) normalized() BaseFields {
	b.ItemNumber = strings.TrimSpace(b.ItemNumber)
	b.ItemName = strings.TrimSpace(b.ItemName)
	b.LotNumber = strings.TrimSpace(b.LotNumber)
	b.Unit = strings.TrimSpace(b.Unit)
	b.Manufacturer = strings.TrimSpace(b.Manufacturer)
	b.Vendor = strings.TrimSpace(b.Vendor)
	b.Transportation = strings.TrimSpace(b.Transportation)
	b.BillNumber = strings.TrimSpace(b.BillNumber)
	b.AttachmentRef = strings.TrimSpace(b.AttachmentRef)
	if !b.ShipmentDate.IsZero() {
		b.ShipmentDate = dateOnly(b.ShipmentDate)
	}
	if b.ExpiryDate != nil {
		d := dateOnly(*b.ExpiryDate)
		b.ExpiryDate = &d
	}
	return b
}

// missingRequired lists every required base field that is empty, in form order.
func (b BaseFields) missingRequired() []string {
	var missing []string
	if b.ShipmentDate.IsZero() {
		missing = append(missing, "shipmentDate")
	}
	if b.ItemNumber == "" {
		missing = append(missing, "itemNumber")
	}
	if b.ItemName == "" {
		missing = append(missing, "itemName")
	}
	if b.LotNumber == "" {
		missing = append(missing, "lotNumber")
	}
	if b.Quantity.IsZero() {
		missing = append(missing, "quantity")
	}
	return missing
}

func (b BaseFields) validateQuantities() error {
	if b.Quantity.IsNegative() {
		return errs.NewValidationError("quantity must be greater than 0")
	}
	if !b.RemainingQuantity.Valid {
		return nil
	}
	r := b.RemainingQuantity.Decimal
	if r.IsNegative() || r.GreaterThan(b.Quantity) {
		return errs.NewValidationError("remainingQuantity must be between 0 and quantity")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PartyChanges is a write to one party block. A nil Name or Signature leaves
// that field untouched; a non-nil empty Signature is rejected.
type PartyChanges struct {
	Name      *string
	Signature []byte
}

func (pc *PartyChanges) touched() bool {
	return pc != nil && (pc.Name != nil || pc.Signature != nil)
}

// Changes is a field-level patch of a shipment record. Nil fields are not
// written. Status, the shipment code, the identifier and the signature dates
// are derived and cannot be set through Changes.
type Changes struct {
	ShipmentDate      *time.Time
	ItemNumber        *string
	ItemName          *string
	LotNumber         *string
	Quantity          *decimal.Decimal
	RemainingQuantity *decimal.Decimal
	Unit              *string
	Manufacturer      *string
	Vendor            *string
	Transportation    *string
	BillNumber        *string
	ExpiryDate        *time.Time
	Damage            *Damage
	AttachmentRef     *string

	Receiver  *PartyChanges
	Inspector *PartyChanges
	Approver  *PartyChanges
}

func (c Changes) baseTouched() bool {
	return c.ShipmentDate != nil || c.ItemNumber != nil || c.ItemName != nil || c.LotNumber != nil ||
		c.Quantity != nil || c.RemainingQuantity != nil || c.Unit != nil || c.Manufacturer != nil ||
		c.Vendor != nil || c.Transportation != nil || c.BillNumber != nil || c.ExpiryDate != nil ||
		c.Damage != nil || c.AttachmentRef != nil
}

func (c Changes) party(p Party) *PartyChanges {
	switch p {
	case Receiver:
		return c.Receiver
	case Inspector:
		return c.Inspector
	case Approver:
		return c.Approver
	default:
		return nil
	}
}

// touchedOwners returns the field blocks the patch writes, in workflow order.
func (c Changes) touchedOwners() []FieldOwner {
	var owners []FieldOwner
	if c.baseTouched() {
		owners = append(owners, OwnerBase)
	}
	for _, p := range Parties() {
		if c.party(p).touched() {
			owners = append(owners, p.Owner())
		}
	}
	return owners
}

// applyBase returns b with the base part of the patch written over it.
// The remaining quantity follows the quantity while it has not been drawn down.
func (c Changes) applyBase(b BaseFields) BaseFields {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	if c.ShipmentDate != nil {
		b.ShipmentDate = *c.ShipmentDate
	}
	setString(&b.ItemNumber, c.ItemNumber)
	setString(&b.ItemName, c.ItemName)
	setString(&b.LotNumber, c.LotNumber)
	if c.Quantity != nil {
		untouched := !b.RemainingQuantity.Valid || b.RemainingQuantity.Decimal.Equal(b.Quantity)
		b.Quantity = *c.Quantity
		if untouched {
			b.RemainingQuantity = decimal.NewNullDecimal(b.Quantity)
		}
	}
	if c.RemainingQuantity != nil {
		b.RemainingQuantity = decimal.NewNullDecimal(*c.RemainingQuantity)
	}
	setString(&b.Unit, c.Unit)
	setString(&b.Manufacturer, c.Manufacturer)
	setString(&b.Vendor, c.Vendor)
	setString(&b.Transportation, c.Transportation)
	setString(&b.BillNumber, c.BillNumber)
	if c.ExpiryDate != nil {
		d := *c.ExpiryDate
		b.ExpiryDate = &d
	}
	if c.Damage != nil {
		b.Damage = *c.Damage
	}
	setString(&b.AttachmentRef, c.AttachmentRef)
	return b.normalized()
}
