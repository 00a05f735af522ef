package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/sequence"
	"shipflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through NewDraft, PrepareDraft or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewDraft constructor")

	errApproved = errs.NewPermissionError("record is approved and can no longer be changed")
)

// Shipment is the aggregate root of the sign-off workflow.
//
// Shipment follows these invariants:
//   - status always equals DeriveStatus of the three signatures
//   - code always equals ComputeShipmentCode of item number, lot number and shipment date
//   - each party's signed date is present exactly when its signature is
//   - id and sequence number are assigned once, at first save
//   - 0 <= remaining quantity <= quantity
//   - an approved record accepts no further writes
//
// A Shipment without a sequence number is a draft. Drafts open only the
// base and receiver blocks, whatever their computed status.
type Shipment struct {
	id             string
	sequenceNumber int64
	code           string

	base      BaseFields
	receiver  kernel.Signoff
	inspector kernel.Signoff
	approver  kernel.Signoff

	// status is recomputed on every write; savedStatus is the status the
	// record had when it was last loaded or persisted.
	status      Status
	savedStatus Status

	createdBy kernel.UUID
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDraft creates an unsaved record in PendingShipment with its shipment
// code computed. Every missing required base field (shipmentDate,
// itemNumber, itemName, lotNumber, quantity) is reported in a single
// ValidationError.
//
// Example:
//
//	draft, err := shipment.NewDraft(session.Identity(), shipment.BaseFields{
//	    ShipmentDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
//	    ItemNumber:   "AB12",
//	    ItemName:     "Citric acid",
//	    LotNumber:    "XY99",
//	    Quantity:     decimal.NewFromInt(40),
//	}, time.Now())
//	// draft.Code() == "AB12-XY99-20240315"
func NewDraft(createdBy kernel.UUID, base BaseFields, now time.Time) (*Shipment, error) {
	base = base.normalized()

	var fieldsErr error
	if missing := base.missingRequired(); len(missing) > 0 {
		fieldsErr = errs.NewMissingFieldsError(missing...)
	}
	if !base.RemainingQuantity.Valid {
		base.RemainingQuantity = decimal.NewNullDecimal(base.Quantity)
	}
	if err := errors.Join(createdBy.Validate(), fieldsErr, base.validateQuantities()); err != nil {
		return nil, err
	}

	s := &Shipment{
		base:          base,
		createdBy:     createdBy,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}
	s.refresh()
	return s, nil
}

// PrepareDraft builds a new record from a complete submission and checks it
// is ready for its first save. Unlike NewDraft followed by Apply, it reports
// missing base and receiver fields together.
func PrepareDraft(createdBy kernel.UUID, changes Changes, now time.Time) (*Shipment, error) {
	for _, owner := range changes.touchedOwners() {
		if owner != OwnerBase && owner != OwnerReceiver {
			return nil, errs.NewPermissionError("cannot edit %s fields before the record is first saved", owner)
		}
	}

	base := changes.applyBase(BaseFields{})
	missing := base.missingRequired()
	rc := changes.Receiver
	if rc == nil || rc.Name == nil || strings.TrimSpace(*rc.Name) == "" {
		missing = append(missing, "receiver.name")
	}
	if rc == nil || len(rc.Signature) == 0 {
		missing = append(missing, "receiver.signature")
	}
	if len(missing) > 0 {
		return nil, errs.NewMissingFieldsError(missing...)
	}

	s, err := NewDraft(createdBy, base, now)
	if err != nil {
		return nil, err
	}
	if err = s.Apply(Changes{Receiver: rc}, now); err != nil {
		return nil, err
	}
	if err = s.ValidateForSubmit(); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreParams carries a persisted record back into the domain.
type RestoreParams struct {
	ID             string
	SequenceNumber int64
	Base           BaseFields
	Receiver       kernel.Signoff
	Inspector      kernel.Signoff
	Approver       kernel.Signoff
	CreatedBy      kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreShipment rebuilds a saved record. Status and code are derived again
// rather than read back, so a drifted row heals on its next write.
func RestoreShipment(p RestoreParams) (*Shipment, error) {
	expectedID, err := sequence.Shipment.FormatID(p.SequenceNumber)
	if err != nil {
		return nil, err
	}
	if expectedID != p.ID {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipment id is invalid",
			fmt.Errorf("%q does not match sequence number %d", p.ID, p.SequenceNumber))
	}

	s := &Shipment{
		id:             p.ID,
		sequenceNumber: p.SequenceNumber,
		base:           p.Base.normalized(),
		receiver:       p.Receiver,
		inspector:      p.Inspector,
		approver:       p.Approver,
		createdBy:      p.CreatedBy,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		isConstructed:  true,
	}
	if !s.base.RemainingQuantity.Valid {
		s.base.RemainingQuantity = decimal.NewNullDecimal(s.base.Quantity)
	}
	s.refresh()
	s.savedStatus = s.status
	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() string {
	return s.id
}

func (s *Shipment) SequenceNumber() int64 {
	return s.sequenceNumber
}

// IsDraft reports whether the record has never been saved.
func (s *Shipment) IsDraft() bool {
	return s.sequenceNumber == 0
}

func (s *Shipment) Code() string {
	return s.code
}

func (s *Shipment) Base() BaseFields {
	b := s.base
	if b.ExpiryDate != nil {
		d := *b.ExpiryDate
		b.ExpiryDate = &d
	}
	return b
}

func (s *Shipment) Signoff(p Party) kernel.Signoff {
	switch p {
	case Receiver:
		return s.receiver
	case Inspector:
		return s.inspector
	case Approver:
		return s.approver
	default:
		return kernel.Signoff{}
	}
}

func (s *Shipment) Status() Status {
	return s.status
}

// SavedStatus is the status as of the last load or save.
func (s *Shipment) SavedStatus() Status {
	return s.savedStatus
}

func (s *Shipment) CreatedBy() kernel.UUID {
	return s.createdBy
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// Apply writes a field-level patch. Every touched block is checked against
// CanEdit before anything changes; all violations are returned together and
// the record is left untouched. A signature in the patch is stamped with now.
func (s *Shipment) Apply(changes Changes, now time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.status == Approved {
		return errApproved
	}

	var denied []error
	for _, owner := range changes.touchedOwners() {
		if !CanEdit(owner, s.editingStatus()) {
			denied = append(denied, s.editDenied(owner))
		}
	}
	if err := joinOrSingle(denied); err != nil {
		return err
	}

	base := s.base
	var invalid []error
	if changes.baseTouched() {
		base = changes.applyBase(s.base)
		if missing := base.missingRequired(); len(missing) > 0 {
			invalid = append(invalid, errs.NewMissingFieldsError(missing...))
		}
		invalid = append(invalid, base.validateQuantities())
	}
	for _, p := range Parties() {
		if pc := changes.party(p); pc != nil && pc.Signature != nil && len(pc.Signature) == 0 {
			invalid = append(invalid, errs.NewValidationError(p.String()+" signature is empty"))
		}
	}
	if err := errors.Join(invalid...); err != nil {
		return err
	}

	s.base = base
	for _, p := range Parties() {
		if pc := changes.party(p); pc != nil && pc.Name != nil {
			s.setSignoff(p, s.Signoff(p).WithName(*pc.Name))
		}
	}
	for _, p := range Parties() {
		if pc := changes.party(p); pc != nil && len(pc.Signature) > 0 {
			if err := s.AttachSignature(p, pc.Signature, now); err != nil {
				return err
			}
		}
	}
	s.updatedAt = now.UTC()
	s.refresh()
	return nil
}

// ValidateForSubmit checks the record carries what its acting party must
// provide before a save. The acting party owns the status the record had when
// last saved (the receiver for drafts). Required are the base fields, the
// acting party's name and signature, and the name of every other party that
// has signed. All missing fields are reported together.
func (s *Shipment) ValidateForSubmit() error {
	if err := s.Validate(); err != nil {
		return err
	}

	acting := Receiver
	if !s.IsDraft() {
		owner, ok := s.savedStatus.Owner()
		if !ok {
			return errApproved
		}
		acting = owner
	}

	missing := s.base.missingRequired()
	for _, p := range Parties() {
		signoff := s.Signoff(p)
		switch {
		case p == acting:
			if signoff.Name() == "" {
				missing = append(missing, p.String()+".name")
			}
			if !signoff.IsSigned() {
				missing = append(missing, p.String()+".signature")
			}
		case signoff.IsSigned() && signoff.Name() == "":
			missing = append(missing, p.String()+".name")
		}
	}
	if len(missing) > 0 {
		return errs.NewMissingFieldsError(missing...)
	}
	return nil
}

// AttachSignature signs as party p, stamps the date and advances the status.
func (s *Shipment) AttachSignature(p Party, signature []byte, now time.Time) error {
	if err := errors.Join(s.Validate(), p.Validate()); err != nil {
		return err
	}
	if s.status == Approved {
		return errApproved
	}
	if !CanEdit(p.Owner(), s.editingStatus()) {
		return s.editDenied(p.Owner())
	}

	signed, err := s.Signoff(p).Sign(signature, now)
	if err != nil {
		return err
	}
	s.setSignoff(p, signed)
	s.updatedAt = now.UTC()
	s.refresh()
	return nil
}

// RemoveSignature clears party p's signature and date and moves the status
// back. It is allowed only while no later party has signed, and never on an
// approved record.
func (s *Shipment) RemoveSignature(p Party, now time.Time) error {
	if err := errors.Join(s.Validate(), p.Validate()); err != nil {
		return err
	}
	if s.status == Approved {
		return errApproved
	}
	if !s.Signoff(p).IsSigned() {
		return errs.NewValidationError(p.String() + " has not signed")
	}
	for later := p + 1; later <= Approver; later++ {
		if s.Signoff(later).IsSigned() {
			return errs.NewPermissionError("cannot remove %s signature while %s has signed", p, later)
		}
	}

	s.setSignoff(p, s.Signoff(p).Unsign())
	s.updatedAt = now.UTC()
	s.refresh()
	return nil
}

// AssignSequence gives a draft its sequence number and identifier. It can
// only happen once.
func (s *Shipment) AssignSequence(n int64) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.IsDraft() {
		return errs.NewValueIsInvalidErrorWithCause("sequence number is invalid",
			fmt.Errorf("%s already has sequence number %d", s.id, s.sequenceNumber))
	}
	id, err := sequence.Shipment.FormatID(n)
	if err != nil {
		return err
	}
	s.sequenceNumber = n
	s.id = id
	return nil
}

// MarkSaved makes the current status the baseline for the next submission.
func (s *Shipment) MarkSaved() {
	s.savedStatus = s.status
}

func (s *Shipment) setSignoff(p Party, signoff kernel.Signoff) {
	switch p {
	case Receiver:
		s.receiver = signoff
	case Inspector:
		s.inspector = signoff
	case Approver:
		s.approver = signoff
	}
}

// editingStatus is the status permissions are evaluated against.
func (s *Shipment) editingStatus() Status {
	if s.IsDraft() {
		return PendingShipment
	}
	return s.status
}

func (s *Shipment) editDenied(owner FieldOwner) error {
	if s.IsDraft() {
		return errs.NewPermissionError("cannot edit %s fields before the record is first saved", owner)
	}
	return errs.NewPermissionError("cannot edit %s fields while status is %s", owner, s.status)
}

func (s *Shipment) refresh() {
	s.code = ComputeShipmentCode(s.base.ItemNumber, s.base.LotNumber, s.base.ShipmentDate)
	s.status = DeriveStatus(s.receiver.IsSigned(), s.inspector.IsSigned(), s.approver.IsSigned())
}

func joinOrSingle(errList []error) error {
	switch len(errList) {
	case 0:
		return nil
	case 1:
		return errList[0]
	default:
		return errors.Join(errList...)
	}
}
