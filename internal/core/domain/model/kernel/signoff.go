package kernel

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"shipflow/internal/pkg/errs"
)

// Signoff is one party's contribution to a record: a printed name, an opaque
// signature blob (an encoded image or PDF, never interpreted) and the moment
// the signature was captured.
//
// The signed-at time is present if and only if a signature is present. It is
// never set on its own: Sign stamps it and Unsign clears it together with the
// signature.
type Signoff struct {
	name      string
	signature []byte
	signedAt  *time.Time
}

// NewSignoff builds a complete signoff. All of name, signature and time are required.
func NewSignoff(name string, signature []byte, at time.Time) (Signoff, error) {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if len(signature) == 0 {
		missing = append(missing, "signature")
	}
	if len(missing) > 0 {
		return Signoff{}, errs.NewMissingFieldsError(missing...)
	}
	return Signoff{name: strings.TrimSpace(name)}.Sign(signature, at)
}

// RestoreSignoff rebuilds a signoff read from storage and rejects rows where
// the signature and its date disagree.
func RestoreSignoff(name string, signature []byte, signedAt *time.Time) (Signoff, error) {
	if (len(signature) == 0) != (signedAt == nil) {
		return Signoff{}, errs.NewValueIsInvalidErrorWithCause(
			"signoff is invalid", errors.New("signature and signed date must be present together"))
	}
	s := Signoff{name: name}
	if len(signature) > 0 {
		at := signedAt.UTC()
		s.signature = bytes.Clone(signature)
		s.signedAt = &at
	}
	return s, nil
}

func (s Signoff) Name() string {
	return s.name
}

// Signature returns a copy of the signature blob, or nil when unsigned.
func (s Signoff) Signature() []byte {
	return bytes.Clone(s.signature)
}

func (s Signoff) SignedAt() *time.Time {
	if s.signedAt == nil {
		return nil
	}
	at := *s.signedAt
	return &at
}

func (s Signoff) IsSigned() bool {
	return len(s.signature) > 0
}

func (s Signoff) IsEmpty() bool {
	return s.name == "" && !s.IsSigned()
}

func (s Signoff) WithName(name string) Signoff {
	s.name = strings.TrimSpace(name)
	return s
}

// Sign attaches the signature and stamps it with at.
func (s Signoff) Sign(signature []byte, at time.Time) (Signoff, error) {
	if len(signature) == 0 {
		return s, errs.NewValidationError("signature is empty")
	}
	stamped := at.UTC()
	s.signature = bytes.Clone(signature)
	s.signedAt = &stamped
	return s, nil
}

// Unsign clears the signature and its date, keeping the name.
func (s Signoff) Unsign() Signoff {
	s.signature = nil
	s.signedAt = nil
	return s
}
