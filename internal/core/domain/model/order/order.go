package order

import (
	"errors"
	"fmt"
	"strings"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a set of requested lines.
type Order struct {
	id         uuid.UUID
	reference  string
	status     Status
	shipmentID *uuid.UUID
	lines      []*Line
	guard      guard.ConstructorGuard
}

// NewOrder creates a draft order without lines.
func NewOrder(id uuid.UUID, reference string) (*Order, error) {
	return RestoreOrder(id, reference, StatusDraft, nil, nil)
}

func RestoreOrder(id uuid.UUID, reference string, status Status, shipmentID *uuid.UUID, lines []*Line) (*Order, error) {
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

	return &Order{
		id:         id,
		reference:  reference,
		status:     status,
		shipmentID: shipmentID,
		lines:      lines,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() uuid.UUID          { return o.id }
func (o *Order) Reference() string      { return o.reference }
func (o *Order) Status() Status         { return o.status }
func (o *Order) ShipmentID() *uuid.UUID { return o.shipmentID }

// Lines returns a copy of the line list.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// AddLine appends a line for productID. Lines can only be added to draft
// orders and a product appears on at most one line.
func (o *Order) AddLine(productID uuid.UUID, quantity int) (*Line, error) {
	if o.status != StatusDraft {
		return nil, errs.NewOrderNotEditableError(o.reference, o.status.String())
	}
	if o.LineForProduct(productID) != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("product %s is already on order %s", productID, o.reference))
	}

	line, err := NewLine(uuid.New(), productID, quantity)
	if err != nil {
		return nil, err
	}
	o.lines = append(o.lines, line)
	return line, nil
}

func (o *Order) Line(lineID uuid.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.id == lineID {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order line", lineID)
}

// LineForProduct returns the line requesting productID, or nil.
func (o *Order) LineForProduct(productID uuid.UUID) *Line {
	for _, l := range o.lines {
		if l.productID == productID {
			return l
		}
	}
	return nil
}

// ReservedLotIDs lists every lot any line holds a reservation on, without
// duplicates.
func (o *Order) ReservedLotIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, l := range o.lines {
		for _, id := range l.ReservedLotIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// IsFullyPrepared reports whether no line has anything left to prepare.
func (o *Order) IsFullyPrepared() bool {
	for _, l := range o.lines {
		if l.Remaining() > 0 {
			return false
		}
	}
	return true
}

// EnsureReservable fails with OrderNotEditable when stock can no longer be
// reserved for the order.
func (o *Order) EnsureReservable() error {
	if !o.status.IsReservable() {
		return errs.NewOrderNotEditableError(o.reference, o.status.String())
	}
	return nil
}

// EnsurePreparable fails with OrderNotReserved unless the order is reserved
// or being prepared.
func (o *Order) EnsurePreparable() error {
	if !o.status.IsPreparable() {
		return errs.NewOrderNotReservedError(o.reference, o.status.String())
	}
	return nil
}

func (o *Order) MarkReserved() error {
	return o.moveTo(StatusReserved)
}

// FinishPreparation moves the order to ready when every line is prepared and
// to preparing otherwise.
func (o *Order) FinishPreparation() error {
	if o.IsFullyPrepared() {
		return o.moveTo(StatusReady)
	}
	return o.moveTo(StatusPreparing)
}

func (o *Order) MarkShipped() error {
	return o.moveTo(StatusShipped)
}

// Cancel moves the order to cancelled. Outstanding reservations must be
// released beforehand.
func (o *Order) Cancel() error {
	if !o.status.CanMoveTo(StatusCancelled) {
		return errs.NewOrderNotEditableError(o.reference, o.status.String())
	}
	for _, l := range o.lines {
		if l.reserved > 0 {
			return errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("line %s still holds %d reserved", l.id, l.reserved))
		}
	}
	o.status = StatusCancelled
	return nil
}

// AttachShipment links the order to shipmentID. An order keeps the first
// shipment it was given.
func (o *Order) AttachShipment(shipmentID uuid.UUID) error {
	if shipmentID == uuid.Nil {
		return errs.NewValueIsRequiredError("shipment")
	}
	if o.shipmentID != nil && *o.shipmentID != shipmentID {
		return errs.NewValueIsInvalidErrorWithCause("shipment",
			fmt.Errorf("order %s already ships with %s", o.reference, *o.shipmentID))
	}
	o.shipmentID = &shipmentID
	return nil
}

func (o *Order) moveTo(next Status) error {
	if !o.status.CanMoveTo(next) {
		return errs.NewInvalidTransitionError("order", o.status.String(), next.String())
	}
	o.status = next
	return nil
}
