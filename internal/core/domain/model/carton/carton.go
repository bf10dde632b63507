package carton

import (
	"errors"
	"strings"
	"time"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrCartonIsNotConstructed = errors.New("Carton must be created via NewCarton constructor")

// Item is the quantity of one lot packed in a carton. A carton holds at most
// one item per lot.
type Item struct {
	id        uuid.UUID
	lotID     uuid.UUID
	productID uuid.UUID
	quantity  int
}

func RestoreItem(id, lotID, productID uuid.UUID, quantity int) *Item {
	return &Item{id: id, lotID: lotID, productID: productID, quantity: quantity}
}

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) LotID() uuid.UUID     { return i.lotID }
func (i *Item) ProductID() uuid.UUID { return i.productID }
func (i *Item) Quantity() int        { return i.quantity }

// StatusEvent is the audit trail of a carton status change.
type StatusEvent struct {
	ID       uuid.UUID
	CartonID uuid.UUID
	Previous Status
	Next     Status
	Reason   string
	Actor    kernel.Actor
	At       time.Time
}

// Carton is a physical shipping container and the aggregate root of its
// items.
type Carton struct {
	id         uuid.UUID
	code       string
	origin     CodeOrigin
	status     Status
	shipmentID *uuid.UUID
	location   *kernel.Location
	dimensions *kernel.Dimensions
	preparedBy kernel.Actor
	createdAt  time.Time
	items      []*Item
	events     []StatusEvent
	guard      guard.ConstructorGuard
}

// NewCarton creates an empty draft carton. origin tells whether code was
// generated or typed by an operator.
func NewCarton(id uuid.UUID, code string, origin CodeOrigin, preparedBy kernel.Actor, createdAt time.Time) (*Carton, error) {
	return RestoreCarton(id, code, origin, StatusDraft, nil, nil, nil, preparedBy, createdAt, nil)
}

func RestoreCarton(
	id uuid.UUID,
	code string,
	origin CodeOrigin,
	status Status,
	shipmentID *uuid.UUID,
	location *kernel.Location,
	dimensions *kernel.Dimensions,
	preparedBy kernel.Actor,
	createdAt time.Time,
	items []*Item,
) (*Carton, error) {
	code = strings.TrimSpace(code)
	var idErr, codeErr error
	if id == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}
	if err := errors.Join(idErr, codeErr, status.Validate()); err != nil {
		return nil, err
	}
	if origin != CodeManual {
		origin = CodeGenerated
	}

	return &Carton{
		id:         id,
		code:       code,
		origin:     origin,
		status:     status,
		shipmentID: shipmentID,
		location:   location,
		dimensions: dimensions,
		preparedBy: preparedBy,
		createdAt:  createdAt,
		items:      items,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c *Carton) Validate() error {
	if c == nil {
		return ErrCartonIsNotConstructed
	}
	return c.guard.Validate(ErrCartonIsNotConstructed)
}

func (c *Carton) ID() uuid.UUID                  { return c.id }
func (c *Carton) Code() string                   { return c.code }
func (c *Carton) Origin() CodeOrigin             { return c.origin }
func (c *Carton) Status() Status                 { return c.status }
func (c *Carton) ShipmentID() *uuid.UUID         { return c.shipmentID }
func (c *Carton) Location() *kernel.Location     { return c.location }
func (c *Carton) Dimensions() *kernel.Dimensions { return c.dimensions }
func (c *Carton) PreparedBy() kernel.Actor       { return c.preparedBy }
func (c *Carton) CreatedAt() time.Time           { return c.createdAt }

// Items returns a copy of the item list.
func (c *Carton) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Carton) IsEmpty() bool { return len(c.items) == 0 }

// TotalQuantity sums every item.
func (c *Carton) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.quantity
	}
	return total
}

// ProductIDs lists the distinct products in the carton, in item order.
func (c *Carton) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(c.items))
	out := make([]uuid.UUID, 0, len(c.items))
	for _, item := range c.items {
		if !seen[item.productID] {
			seen[item.productID] = true
			out = append(out, item.productID)
		}
	}
	return out
}

// EnsureModifiable fails with CartonAlreadyShipped once the carton left.
func (c *Carton) EnsureModifiable() error {
	if c.status == StatusShipped {
		return errs.NewCartonAlreadyShippedError(c.code)
	}
	return nil
}

// AttachShipment links the carton to shipmentID. A carton already linked to
// another shipment is a conflict.
func (c *Carton) AttachShipment(shipmentID uuid.UUID) error {
	if c.shipmentID != nil && *c.shipmentID != shipmentID {
		return errs.NewCartonShipmentConflictError(c.code)
	}
	c.shipmentID = &shipmentID
	return nil
}

func (c *Carton) SetLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = &location
	return nil
}

// FillDimensions sets the dimensions when none are recorded yet.
func (c *Carton) FillDimensions(dimensions kernel.Dimensions) {
	if c.dimensions != nil || dimensions.Validate() != nil {
		return
	}
	c.dimensions = &dimensions
}

// AddItem packs quantity of a lot, merging with the lot's existing item.
func (c *Carton) AddItem(lotID, productID uuid.UUID, quantity int) error {
	if err := c.EnsureModifiable(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewInvalidQuantityError(quantity)
	}
	for _, item := range c.items {
		if item.lotID == lotID {
			item.quantity += quantity
			return nil
		}
	}
	c.items = append(c.items, &Item{id: uuid.New(), lotID: lotID, productID: productID, quantity: quantity})
	return nil
}

// Unpack empties the carton and detaches it from its shipment. It returns the
// removed items so the caller can put the stock back. The status is left to
// the caller (see SetStatus).
func (c *Carton) Unpack() ([]*Item, error) {
	if err := c.EnsureModifiable(); err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, errs.NewEmptyCartonError(c.code)
	}
	removed := c.items
	c.items = nil
	c.shipmentID = nil
	return removed, nil
}

// SetStatus moves the carton to next and records a StatusEvent. It returns
// false, and records nothing, when the status is unchanged.
func (c *Carton) SetStatus(next Status, reason string, actor kernel.Actor, at time.Time) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}
	if next == c.status {
		return false, nil
	}
	if !c.status.CanMoveTo(next) {
		if c.status == StatusShipped {
			return false, errs.NewCartonAlreadyShippedError(c.code)
		}
		return false, errs.NewInvalidTransitionError("carton", c.status.String(), next.String())
	}

	c.events = append(c.events, StatusEvent{
		ID:       uuid.New(),
		CartonID: c.id,
		Previous: c.status,
		Next:     next,
		Reason:   reason,
		Actor:    actor,
		At:       at,
	})
	c.status = next
	return true, nil
}

// Recode replaces a generated code. Manual codes are kept as typed.
func (c *Carton) Recode(code string) bool {
	if c.origin == CodeManual || code == "" || code == c.code {
		return false
	}
	c.code = code
	return true
}

// DrainEvents hands the unsaved status events to the repository.
func (c *Carton) DrainEvents() []StatusEvent {
	events := c.events
	c.events = nil
	return events
}
