package shipment

import (
	"strings"
	"time"
)

const codeSegmentLength = 4

// ComputeShipmentCode builds the shipment code from the first four ASCII
// letters or digits of the item number and of the lot number, upper-cased,
// and the shipment date as YYYYMMDD, joined by hyphens:
//
//	ComputeShipmentCode("ab-12x", "xy/99", 2024-03-15) == "AB12-XY99-20240315"
//
// It is pure and idempotent.
func ComputeShipmentCode(itemNumber, lotNumber string, shipmentDate time.Time) string {
	return strings.Join([]string{
		codeSegment(itemNumber),
		codeSegment(lotNumber),
		shipmentDate.Format("20060102"),
	}, "-")
}

func codeSegment(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == codeSegmentLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
