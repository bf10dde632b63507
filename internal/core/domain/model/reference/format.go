package reference

import (
	"fmt"
	"regexp"
	"strconv"

	"wms/internal/core/domain/model/kernel"
)

var receiptPattern = regexp.MustCompile(`^(\d{2})-(\d{2,})-([A-Z0-9]{3})-(\d{2,})$`)

// ReceiptReference is a parsed YY-SS-DDD-CC reference.
type ReceiptReference struct {
	YearPrefix string
	Sequence   int
	DonorCode  string
	DonorCount int
}

func (r ReceiptReference) String() string {
	return fmt.Sprintf("%s-%02d-%s-%02d", r.YearPrefix, r.Sequence, r.DonorCode, r.DonorCount)
}

// YearPrefix is the two-digit year used by every reference.
func YearPrefix(year int) string {
	return fmt.Sprintf("%02d", year%100)
}

// DonorCode is the three-letter donor fragment; an anonymous receipt gets XXX.
func DonorCode(donorName string) string {
	return kernel.Fragment(donorName, 3)
}

func FormatReceipt(year, sequence int, donorName string, donorCount int) string {
	return ReceiptReference{
		YearPrefix: YearPrefix(year),
		Sequence:   sequence,
		DonorCode:  DonorCode(donorName),
		DonorCount: donorCount,
	}.String()
}

// ParseReceipt reports false for anything that is not a well-formed receipt
// reference.
func ParseReceipt(reference string) (ReceiptReference, bool) {
	m := receiptPattern.FindStringSubmatch(reference)
	if m == nil {
		return ReceiptReference{}, false
	}
	seq, err := strconv.Atoi(m[2])
	if err != nil {
		return ReceiptReference{}, false
	}
	count, err := strconv.Atoi(m[4])
	if err != nil {
		return ReceiptReference{}, false
	}
	return ReceiptReference{YearPrefix: m[1], Sequence: seq, DonorCode: m[3], DonorCount: count}, true
}

// MaxReceiptSequence is the highest yearly sequence among references issued
// for year. Malformed references are ignored.
func MaxReceiptSequence(year int, references []string) int {
	prefix := YearPrefix(year)
	highest := 0
	for _, ref := range references {
		parsed, ok := ParseReceipt(ref)
		if !ok || parsed.YearPrefix != prefix {
			continue
		}
		highest = max(highest, parsed.Sequence)
	}
	return highest
}

// MaxDonorCount is the highest per-donor count among references issued for
// year.
func MaxDonorCount(year int, references []string) int {
	prefix := YearPrefix(year)
	highest := 0
	for _, ref := range references {
		parsed, ok := ParseReceipt(ref)
		if !ok || parsed.YearPrefix != prefix {
			continue
		}
		highest = max(highest, parsed.DonorCount)
	}
	return highest
}

func FormatShipment(year, sequence int) string {
	return fmt.Sprintf("%s%04d", YearPrefix(year), sequence)
}

// ParseShipment returns the sequence of a six-digit shipment reference issued
// for year.
func ParseShipment(year int, reference string) (int, bool) {
	if len(reference) != 6 || reference[:2] != YearPrefix(year) {
		return 0, false
	}
	seq, err := strconv.Atoi(reference[2:])
	if err != nil || seq < 0 {
		return 0, false
	}
	for _, r := range reference {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	return seq, true
}

func MaxShipmentSequence(year int, references []string) int {
	highest := 0
	for _, ref := range references {
		if seq, ok := ParseShipment(year, ref); ok {
			highest = max(highest, seq)
		}
	}
	return highest
}
