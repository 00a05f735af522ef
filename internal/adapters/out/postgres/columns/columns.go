// Package columns holds the column groups that several record tables embed,
// with their mapping to and from domain values.
package columns

import (
	"time"

	"shipflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SignoffColumns stores one party block. Embedded with a prefix such as
// "receiver_" it becomes receiver_name, receiver_signature and
// receiver_signed_at.
type SignoffColumns struct {
	Name      string     `gorm:"type:varchar(255)"`
	Signature []byte     `gorm:"type:bytea"`
	SignedAt  *time.Time `gorm:"type:timestamptz"`
}

func FromSignoff(s kernel.Signoff) SignoffColumns {
	return SignoffColumns{
		Name:      s.Name(),
		Signature: s.Signature(),
		SignedAt:  s.SignedAt(),
	}
}

func (c SignoffColumns) ToSignoff() (kernel.Signoff, error) {
	return kernel.RestoreSignoff(c.Name, c.Signature, c.SignedAt)
}

// Date stores a calendar day.
func Date(t time.Time) datatypes.Date {
	return datatypes.Date(t)
}

// NullableDate stores an optional calendar day.
func NullableDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

// DateValue reads a date column back as UTC midnight.
func DateValue(d datatypes.Date) time.Time {
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NullableDateValue(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := DateValue(*d)
	return &t
}

// UUID converts a domain identifier to its column value.
func UUID(id kernel.UUID) uuid.UUID {
	return id.Value()
}

func NullableUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := id.Value()
	return &v
}

func UUIDValue(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func NullableUUIDValue(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // a NULL column is not an error
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
