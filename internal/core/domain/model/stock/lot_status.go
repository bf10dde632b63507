package stock

import (
	"fmt"

	"wms/internal/pkg/errs"
)

// LotStatus tells whether a lot may be allocated. Only Available lots are
// FEFO candidates.
//
//	Quarantined ──> Available ──> Expired
//	     ^              │
//	     └──── Hold <───┘
type LotStatus int

const (
	LotStatusUnknown LotStatus = iota
	LotStatusQuarantined
	LotStatusAvailable
	LotStatusHold
	LotStatusExpired
)

func lotStatusCodes() map[LotStatus]string {
	return map[LotStatus]string{
		LotStatusQuarantined: "quarantined",
		LotStatusAvailable:   "available",
		LotStatusHold:        "hold",
		LotStatusExpired:     "expired",
	}
}

// ParseLotStatus reads the lower-case code used by the API.
func ParseLotStatus(code string) (LotStatus, error) {
	for status, c := range lotStatusCodes() {
		if c == code {
			return status, nil
		}
	}
	return LotStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"lot status", fmt.Errorf("%q is not a lot status", code))
}

func (s LotStatus) Validate() error {
	if _, ok := lotStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("lot status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s LotStatus) String() string {
	if code, ok := lotStatusCodes()[s]; ok {
		return code
	}
	return "unknown"
}
