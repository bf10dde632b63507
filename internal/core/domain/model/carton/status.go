package carton

import (
	"fmt"

	"wms/internal/pkg/errs"
)

// Status is the physical carton lifecycle. Shipped is terminal: a shipped
// carton can no longer be packed, unpacked or relabelled.
//
//	Draft ──> Picking ──> Packed ──> Assigned ──> Labeled ──> Shipped
//	  ^          │          │           │            │
//	  └──────────┴──────────┴───────────┴────────────┘ (unpack)
//
// Packing into a carton attached to a shipment jumps straight to Assigned.
type Status int

const (
	StatusUnknown Status = iota
	StatusDraft
	StatusPicking
	StatusPacked
	StatusAssigned
	StatusLabeled
	StatusShipped
)

func statusCodes() map[Status]string {
	return map[Status]string{
		StatusDraft:    "draft",
		StatusPicking:  "picking",
		StatusPacked:   "packed",
		StatusAssigned: "assigned",
		StatusLabeled:  "labeled",
		StatusShipped:  "shipped",
	}
}

// transitions lists, per status, the statuses it may move to.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusDraft:    {StatusPicking, StatusPacked, StatusAssigned},
		StatusPicking:  {StatusDraft, StatusPacked, StatusAssigned},
		StatusPacked:   {StatusDraft, StatusPicking, StatusAssigned},
		StatusAssigned: {StatusDraft, StatusPicking, StatusPacked, StatusLabeled},
		StatusLabeled:  {StatusDraft, StatusAssigned, StatusShipped},
		StatusShipped:  {},
	}
}

func ParseStatus(code string) (Status, error) {
	for s, c := range statusCodes() {
		if c == code {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("carton status", fmt.Errorf("%q is not a status", code))
}

func (s Status) Validate() error {
	if _, ok := statusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("carton status", fmt.Errorf("%d is not a valid status", s))
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

// IsReady reports whether the carton counts as prepared for its shipment.
func (s Status) IsReady() bool {
	return s == StatusPacked || s == StatusShipped
}
