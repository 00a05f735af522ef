// Package sequence names the record types that draw human-readable
// identifiers from a per-type counter and formats those identifiers.
package sequence

import (
	"fmt"
	"strconv"
	"strings"

	"shipflow/internal/pkg/errs"
)

// RecordType scopes a sequence. Every batch form type shares the DP sequence.
type RecordType string

const (
	Shipment RecordType = "shipment"
	Training RecordType = "training"
	DP       RecordType = "dp"
)

type format struct {
	prefix string
	width  int
}

func getFormats() map[RecordType]format {
	return map[RecordType]format{
		Shipment: {prefix: "SHP", width: 6},
		Training: {prefix: "TRN", width: 6},
		DP:       {prefix: "DP", width: 5},
	}
}

func All() []RecordType {
	return []RecordType{Shipment, Training, DP}
}

func (t RecordType) Validate() error {
	if _, ok := getFormats()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("record type is invalid", fmt.Errorf("%q has no sequence", string(t)))
	}
	return nil
}

func (t RecordType) String() string {
	return string(t)
}

// FormatID renders n as the record's identifier, e.g. SHP-000042 or DP-00007.
func (t RecordType) FormatID(n int64) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	if n <= 0 {
		return "", errs.NewValueIsOutOfRangeError("sequence number", n, 1, "unbounded")
	}
	f := getFormats()[t]
	return fmt.Sprintf("%s-%0*d", f.prefix, f.width, n), nil
}

// ParseID is the inverse of FormatID. Missing zero padding is tolerated.
func (t RecordType) ParseID(id string) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	f := getFormats()[t]
	raw, ok := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(id)), f.prefix+"-")
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("id is invalid", fmt.Errorf("%q does not start with %s-", id, f.prefix))
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("id is invalid", fmt.Errorf("%q has no positive sequence number", id))
	}
	return n, nil
}
