package queries

import (
	"errors"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery loads one shipment record with its signatures.
type GetShipmentQuery struct {
	session kernel.Session
	id      string

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery accepts any spelling of the identifier that parses,
// e.g. "shp-42", and normalizes it to SHP-000042.
func NewGetShipmentQuery(session kernel.Session, id string) (GetShipmentQuery, error) {
	if err := session.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	n, err := sequence.Shipment.ParseID(id)
	if err != nil {
		return GetShipmentQuery{}, err
	}
	normalized, err := sequence.Shipment.FormatID(n)
	if err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{session: session, id: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) Session() kernel.Session { return q.session }
func (q GetShipmentQuery) ID() string              { return q.id }

// SignoffView is one party block as stored.
type SignoffView struct {
	Name      string
	Signature []byte
	SignedAt  *time.Time
}

// ShipmentView is a full shipment record. Editable names the field blocks
// (base, receiver, inspector, approver) writable in the current status.
type ShipmentView struct {
	ID                string
	SequenceNumber    int64
	Code              string
	Status            string
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
	PackagingDamaged  bool
	ProductDamaged    bool
	DamageNotes       string
	AttachmentRef     string
	Receiver          SignoffView
	Inspector         SignoffView
	Approver          SignoffView
	Editable          []string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
