package reference

import (
	"fmt"

	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// Kind names the sequence a counter belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindReceipt
	KindReceiptDonor
	KindShipment
)

func kindCodes() map[Kind]string {
	return map[Kind]string{
		KindReceipt:      "receipt",
		KindReceiptDonor: "receipt_donor",
		KindShipment:     "shipment",
	}
}

func ParseKind(code string) (Kind, error) {
	for k, c := range kindCodes() {
		if c == code {
			return k, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("sequence kind", fmt.Errorf("%q is not a kind", code))
}

func (k Kind) String() string {
	if code, ok := kindCodes()[k]; ok {
		return code
	}
	return "unknown"
}

// Scope identifies one counter: a kind, a calendar year and, for donor
// counts, the donor.
type Scope struct {
	Kind    Kind
	Year    int
	DonorID uuid.UUID
}

func ReceiptScope(year int) Scope {
	return Scope{Kind: KindReceipt, Year: year}
}

func DonorScope(year int, donorID uuid.UUID) Scope {
	return Scope{Kind: KindReceiptDonor, Year: year, DonorID: donorID}
}

func ShipmentScope(year int) Scope {
	return Scope{Kind: KindShipment, Year: year}
}

func (s Scope) Validate() error {
	if _, ok := kindCodes()[s.Kind]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("sequence kind", fmt.Errorf("%d is not a valid kind", s.Kind))
	}
	if s.Year < 1 || s.Year > 9999 {
		return errs.NewValueIsOutOfRangeError("year", s.Year, 1, 9999)
	}
	if s.Kind == KindReceiptDonor && s.DonorID == uuid.Nil {
		return errs.NewValueIsRequiredError("donor")
	}
	return nil
}

// Key is the storage key of the scope, unique per counter.
func (s Scope) Key() string {
	if s.Kind == KindReceiptDonor {
		return fmt.Sprintf("%s:%04d:%s", s.Kind, s.Year, s.DonorID)
	}
	return fmt.Sprintf("%s:%04d", s.Kind, s.Year)
}

func (s Scope) String() string {
	return s.Key()
}
