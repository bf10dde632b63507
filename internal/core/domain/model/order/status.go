package order

import (
	"fmt"

	"wms/internal/pkg/errs"
)

// Status is the order lifecycle.
//
//	Draft ──> Reserved ──> Preparing ──> Ready ──> Shipped
//	  │          ^  │          │  ^
//	  │          └──┼──────────┘  │ (re-reserve, prepare again)
//	  └──────────────┴────────────┴──> Cancelled
type Status int

const (
	StatusUnknown Status = iota
	StatusDraft
	StatusReserved
	StatusPreparing
	StatusReady
	StatusShipped
	StatusCancelled
)

func statusCodes() map[Status]string {
	return map[Status]string{
		StatusDraft:     "draft",
		StatusReserved:  "reserved",
		StatusPreparing: "preparing",
		StatusReady:     "ready",
		StatusShipped:   "shipped",
		StatusCancelled: "cancelled",
	}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusDraft:     {StatusReserved, StatusCancelled},
		StatusReserved:  {StatusReserved, StatusPreparing, StatusReady, StatusCancelled},
		StatusPreparing: {StatusReserved, StatusPreparing, StatusReady, StatusCancelled},
		StatusReady:     {StatusShipped},
		StatusShipped:   {},
		StatusCancelled: {},
	}
}

func ParseStatus(code string) (Status, error) {
	for s, c := range statusCodes() {
		if c == code {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a status", code))
}

func (s Status) Validate() error {
	if _, ok := statusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if code, ok := statusCodes()[s]; ok {
		return code
	}
	return "unknown"
}

// CanMoveTo reports whether next is reachable from s in one step.
func (s Status) CanMoveTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsReservable reports whether stock may (still) be reserved in this status.
func (s Status) IsReservable() bool {
	return s.CanMoveTo(StatusReserved)
}

// IsPreparable reports whether cartons may be prepared in this status.
func (s Status) IsPreparable() bool {
	return s == StatusReserved || s == StatusPreparing
}
