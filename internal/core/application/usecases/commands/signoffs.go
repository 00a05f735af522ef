package commands

import (
	"time"

	"shipflow/internal/core/domain/model/kernel"
)

// partialSignoff keeps whatever the caller sent so the aggregate can list
// every missing field at once.
func partialSignoff(name string, signature []byte, now time.Time) kernel.Signoff {
	s := kernel.Signoff{}.WithName(name)
	if len(signature) == 0 {
		return s
	}
	signed, err := s.Sign(signature, now)
	if err != nil {
		return s
	}
	return signed
}
