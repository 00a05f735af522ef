// Package batch models manufacturing batch forms. Blending, filling and
// packaging forms all draw their DP number from one shared sequence.
package batch

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

var ErrFormIsNotConstructed = errors.New("Form must be created via NewForm constructor")

type FormType int

const (
	UnknownForm FormType = iota
	Blending
	Filling
	Packaging
)

func getFormTypeStrings() map[FormType]string {
	return map[FormType]string{
		Blending:  "blending",
		Filling:   "filling",
		Packaging: "packaging",
	}
}

func ParseFormType(s string) (FormType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for ft, str := range getFormTypeStrings() {
		if str == needle {
			return ft, nil
		}
	}
	return UnknownForm, errs.NewValueIsInvalidErrorWithCause("form type is invalid", fmt.Errorf("%q is not a batch form type", s))
}

func (f FormType) Validate() error {
	if _, ok := getFormTypeStrings()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("form type is invalid", fmt.Errorf("%d is not a batch form type", f))
	}
	return nil
}

func (f FormType) String() string {
	if str, ok := getFormTypeStrings()[f]; ok {
		return str
	}
	return "unknown"
}

// Fields are the operator-entered values of a batch form.
type Fields struct {
	FormType        FormType
	ItemNumber      string
	ProductName     string
	LotNumber       string
	BatchQuantity   decimal.Decimal
	ManufactureDate time.Time
	Operator        kernel.Signoff
}

// Form is a manufacturing batch record identified by its DP number.
type Form struct {
	id             string
	sequenceNumber int64
	fields         Fields
	createdBy      kernel.UUID
	createdAt      time.Time

	isConstructed bool
}

// NewForm validates a batch form. Every missing field is listed together.
func NewForm(createdBy kernel.UUID, f Fields, now time.Time) (*Form, error) {
	f.ItemNumber = strings.ToUpper(strings.TrimSpace(f.ItemNumber))
	f.ProductName = strings.TrimSpace(f.ProductName)
	f.LotNumber = strings.TrimSpace(f.LotNumber)

	var missing []string
	if f.ItemNumber == "" {
		missing = append(missing, "itemNumber")
	}
	if f.ProductName == "" {
		missing = append(missing, "productName")
	}
	if f.LotNumber == "" {
		missing = append(missing, "lotNumber")
	}
	if f.BatchQuantity.IsZero() {
		missing = append(missing, "batchQuantity")
	}
	if f.ManufactureDate.IsZero() {
		missing = append(missing, "manufactureDate")
	}
	if f.Operator.Name() == "" {
		missing = append(missing, "operator.name")
	}
	if !f.Operator.IsSigned() {
		missing = append(missing, "operator.signature")
	}

	var fieldsErr, quantityErr error
	if len(missing) > 0 {
		fieldsErr = errs.NewMissingFieldsError(missing...)
	}
	if f.BatchQuantity.IsNegative() {
		quantityErr = errs.NewValidationError("batchQuantity must be greater than 0")
	}
	if err := errors.Join(createdBy.Validate(), f.FormType.Validate(), fieldsErr, quantityErr); err != nil {
		return nil, err
	}

	return &Form{
		fields:        f,
		createdBy:     createdBy,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

func RestoreForm(id string, sequenceNumber int64, f Fields, createdBy kernel.UUID, createdAt time.Time) (*Form, error) {
	expectedID, err := sequence.DP.FormatID(sequenceNumber)
	if err != nil {
		return nil, err
	}
	if expectedID != id {
		return nil, errs.NewValueIsInvalidErrorWithCause("dp number is invalid",
			fmt.Errorf("%q does not match sequence number %d", id, sequenceNumber))
	}
	return &Form{
		id:             id,
		sequenceNumber: sequenceNumber,
		fields:         f,
		createdBy:      createdBy,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

func (b *Form) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrFormIsNotConstructed
	}
	return nil
}

// AssignSequence gives the form its DP number.
func (b *Form) AssignSequence(n int64) error {
	if b.sequenceNumber != 0 {
		return errs.NewValueIsInvalidErrorWithCause("sequence number is invalid",
			fmt.Errorf("%s already has sequence number %d", b.id, b.sequenceNumber))
	}
	id, err := sequence.DP.FormatID(n)
	if err != nil {
		return err
	}
	b.sequenceNumber = n
	b.id = id
	return nil
}

func (b *Form) ID() string             { return b.id }
func (b *Form) SequenceNumber() int64  { return b.sequenceNumber }
func (b *Form) Fields() Fields         { return b.fields }
func (b *Form) CreatedBy() kernel.UUID { return b.createdBy }
func (b *Form) CreatedAt() time.Time   { return b.createdAt }
