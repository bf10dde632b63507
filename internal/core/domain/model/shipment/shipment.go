// Package shipment holds the Shipment aggregate: the outbound consignment
// cartons are assigned to.
//
// A shipment is locked once it is planned, shipped, received by the
// correspondent or delivered, or while it is disputed; locked shipments
// reject packing and unpacking.
package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Status is the shipment lifecycle.
//
//	Draft ──> Picking ──> Packed ──> Planned ──> Shipped ──> ReceivedCorrespondent ──> Delivered
//
// Draft, Picking and Packed are recomputed from the cartons by SyncReadiness.
type Status int

const (
	StatusUnknown Status = iota
	StatusDraft
	StatusPicking
	StatusPacked
	StatusPlanned
	StatusShipped
	StatusReceivedCorrespondent
	StatusDelivered
)

func statusCodes() map[Status]string {
	return map[Status]string{
		StatusDraft:                 "draft",
		StatusPicking:               "picking",
		StatusPacked:                "packed",
		StatusPlanned:               "planned",
		StatusShipped:               "shipped",
		StatusReceivedCorrespondent: "received_correspondent",
		StatusDelivered:             "delivered",
	}
}

func ParseStatus(code string) (Status, error) {
	for s, c := range statusCodes() {
		if c == code {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%q is not a status", code))
}

func (s Status) Validate() error {
	if _, ok := statusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if code, ok := statusCodes()[s]; ok {
		return code
	}
	return "unknown"
}

// Shipment is an outbound consignment.
type Shipment struct {
	id        uuid.UUID
	reference string
	status    Status
	disputed  bool
	readyAt   *time.Time
	guard     guard.ConstructorGuard
}

// NewShipment creates a draft shipment.
func NewShipment(id uuid.UUID, reference string) (*Shipment, error) {
	return RestoreShipment(id, reference, StatusDraft, false, nil)
}

func RestoreShipment(id uuid.UUID, reference string, status Status, disputed bool, readyAt *time.Time) (*Shipment, error) {
	reference = strings.TrimSpace(reference)
	var idErr, refErr error
	if id == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if reference == "" {
		refErr = errs.NewValueIsRequiredError("reference")
	}
	if err := errors.Join(idErr, refErr, status.Validate()); err != nil {
		return nil, err
	}

	return &Shipment{
		id:        id,
		reference: reference,
		status:    status,
		disputed:  disputed,
		readyAt:   readyAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() uuid.UUID       { return s.id }
func (s *Shipment) Reference() string   { return s.reference }
func (s *Shipment) Status() Status      { return s.status }
func (s *Shipment) IsDisputed() bool    { return s.disputed }
func (s *Shipment) ReadyAt() *time.Time { return s.readyAt }

// IsLocked reports whether cartons may no longer be packed into or unpacked
// from the shipment.
func (s *Shipment) IsLocked() bool {
	if s.disputed {
		return true
	}
	switch s.status {
	case StatusPlanned, StatusShipped, StatusReceivedCorrespondent, StatusDelivered:
		return true
	default:
		return false
	}
}

// EnsureEditable returns ShipmentLocked when IsLocked.
func (s *Shipment) EnsureEditable() error {
	if s.IsLocked() {
		return errs.NewShipmentLockedError(s.reference)
	}
	return nil
}

func (s *Shipment) SetDisputed(disputed bool) {
	s.disputed = disputed
}

// SyncReadiness recomputes the preparation status from carton counts: no
// ready carton is draft, some is picking, all is packed. Shipments already
// planned or further along are left untouched. readyAt is stamped on
// entering packed and cleared on leaving it. It reports whether anything
// changed.
func (s *Shipment) SyncReadiness(total, ready int, now time.Time) bool {
	if s.status >= StatusPlanned {
		return false
	}

	next := StatusPacked
	switch {
	case total == 0 || ready == 0:
		next = StatusDraft
	case ready < total:
		next = StatusPicking
	}

	changed := next != s.status
	if next == StatusPacked {
		if s.status != StatusPacked || s.readyAt == nil {
			at := now
			s.readyAt = &at
			changed = true
		}
	} else if s.readyAt != nil {
		s.readyAt = nil
		changed = true
	}
	s.status = next
	return changed
}

// Advance moves the shipment along the outbound part of its lifecycle
// (planned, shipped, received, delivered). Steps cannot be skipped backwards.
func (s *Shipment) Advance(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if next < StatusPlanned || next <= s.status {
		return errs.NewInvalidTransitionError("shipment", s.status.String(), next.String())
	}
	s.status = next
	return nil
}
