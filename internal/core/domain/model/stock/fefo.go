package stock

import (
	"bytes"
	"slices"
	"time"
)

// CompareFEFO orders lots first-expired-first-out: lots without an expiry go
// last, then expiry date, then reception date, then id so that equal dates
// still give a stable order.
func CompareFEFO(a, b *Lot) int {
	if c := compareDates(a.expiresOn, b.expiresOn); c != 0 {
		return c
	}
	if c := compareDates(a.receivedOn, b.receivedOn); c != 0 {
		return c
	}
	return bytes.Compare(a.id[:], b.id[:])
}

// SortFEFO sorts lots in place.
func SortFEFO(lots []*Lot) {
	slices.SortStableFunc(lots, CompareFEFO)
}

// Allocatable keeps the available lots with stock left, in FEFO order.
func Allocatable(lots []*Lot) []*Lot {
	out := make([]*Lot, 0, len(lots))
	for _, lot := range lots {
		if lot.IsAllocatable() {
			out = append(out, lot)
		}
	}
	SortFEFO(out)
	return out
}

// TotalAvailable sums Available over lots.
func TotalAvailable(lots []*Lot) int {
	total := 0
	for _, lot := range lots {
		total += lot.Available()
	}
	return total
}

// nil sorts after any date, like "NULLS LAST".
func compareDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
