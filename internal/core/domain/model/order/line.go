package order

import (
	"errors"
	"fmt"

	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// Allocation is a quantity taken from, or given back to, one lot.
type Allocation struct {
	LotID    uuid.UUID
	Quantity int
}

// Reservation is the quantity of one lot soft-committed to a line. It is
// owned by the line and deleted once it reaches zero.
type Reservation struct {
	id       uuid.UUID
	lotID    uuid.UUID
	quantity int
}

func RestoreReservation(id, lotID uuid.UUID, quantity int) *Reservation {
	return &Reservation{id: id, lotID: lotID, quantity: quantity}
}

func (r *Reservation) ID() uuid.UUID    { return r.id }
func (r *Reservation) LotID() uuid.UUID { return r.lotID }
func (r *Reservation) Quantity() int    { return r.quantity }

// Line is one product requested on an order.
//
// Invariant: prepared + reserved <= quantity, and reserved equals the sum of
// the line's reservations.
type Line struct {
	id           uuid.UUID
	productID    uuid.UUID
	quantity     int
	reserved     int
	prepared     int
	reservations []*Reservation
}

func NewLine(id, productID uuid.UUID, quantity int) (*Line, error) {
	return RestoreLine(id, productID, quantity, 0, 0, nil)
}

// RestoreLine rebuilds a line read from storage. Counters are only checked
// for sign so that drifted rows can still be released.
func RestoreLine(id, productID uuid.UUID, quantity, reserved, prepared int, reservations []*Reservation) (*Line, error) {
	var idErr, productErr, qtyErr, counterErr error
	if id == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if productID == uuid.Nil {
		productErr = errs.NewValueIsRequiredError("product")
	}
	if quantity <= 0 {
		qtyErr = errs.NewInvalidQuantityError(quantity)
	}
	if reserved < 0 || prepared < 0 {
		counterErr = errs.NewValueIsInvalidErrorWithCause("line counters",
			fmt.Errorf("reserved %d and prepared %d must not be negative", reserved, prepared))
	}
	if err := errors.Join(idErr, productErr, qtyErr, counterErr); err != nil {
		return nil, err
	}

	return &Line{
		id:           id,
		productID:    productID,
		quantity:     quantity,
		reserved:     reserved,
		prepared:     prepared,
		reservations: reservations,
	}, nil
}

func (l *Line) ID() uuid.UUID        { return l.id }
func (l *Line) ProductID() uuid.UUID { return l.productID }
func (l *Line) Quantity() int        { return l.quantity }
func (l *Line) Reserved() int        { return l.reserved }
func (l *Line) Prepared() int        { return l.prepared }

// Reservations returns a copy of the reservation list.
func (l *Line) Reservations() []*Reservation {
	out := make([]*Reservation, len(l.reservations))
	copy(out, l.reservations)
	return out
}

// ReservedLotIDs lists the lots the line holds reservations on.
func (l *Line) ReservedLotIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(l.reservations))
	for _, r := range l.reservations {
		out = append(out, r.lotID)
	}
	return out
}

// Remaining is what still has to be prepared.
func (l *Line) Remaining() int {
	return max(0, l.quantity-l.prepared)
}

// Shortfall is what still has to be reserved.
func (l *Line) Shortfall() int {
	return max(0, l.Remaining()-l.reserved)
}

// Reserve records quantity reserved on lotID, merging with an existing
// reservation on the same lot.
func (l *Line) Reserve(lotID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError(quantity)
	}
	if quantity > l.Shortfall() {
		return errs.NewValueIsOutOfRangeError("reserved quantity", quantity, 1, l.Shortfall())
	}
	l.reserved += quantity
	for _, r := range l.reservations {
		if r.lotID == lotID {
			r.quantity += quantity
			return nil
		}
	}
	l.reservations = append(l.reservations, &Reservation{id: uuid.New(), lotID: lotID, quantity: quantity})
	return nil
}

// Release gives back quantity of the reservation, walking reservations in
// lotOrder (lots missing from lotOrder come last, in their stored order).
// Reservations that reach zero are removed. The line is left untouched when
// it does not hold enough.
func (l *Line) Release(quantity int, lotOrder []uuid.UUID) ([]Allocation, error) {
	if quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(quantity)
	}
	if quantity > l.reserved || quantity > l.covered() {
		return nil, errs.NewInsufficientReservationError(quantity, min(l.reserved, l.covered()))
	}

	taken := l.drain(quantity, lotOrder)
	l.reserved -= quantity
	return taken, nil
}

// ReleaseAll drops every reservation and zeroes the reserved counter, even
// when the counter had drifted from the reservation rows.
func (l *Line) ReleaseAll(lotOrder []uuid.UUID) []Allocation {
	taken := l.drain(l.covered(), lotOrder)
	l.reserved = 0
	return taken
}

// Consume turns quantity of the reservation into prepared stock. Zero
// quantity reservations are skipped. The line is left untouched when its
// reservations cannot cover quantity.
func (l *Line) Consume(quantity int, lotOrder []uuid.UUID) ([]Allocation, error) {
	if quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(quantity)
	}
	if quantity > l.covered() {
		return nil, errs.NewInsufficientReservationError(quantity, l.covered())
	}

	taken := l.drain(quantity, lotOrder)
	l.reserved = max(0, l.reserved-quantity)
	l.prepared += quantity
	return taken, nil
}

// AddPrepared books quantity as prepared without going through the
// reservation, e.g. when a pre-packed carton is assigned to the order.
func (l *Line) AddPrepared(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError(quantity)
	}
	if quantity > l.Remaining() {
		return errs.NewValueIsOutOfRangeError("prepared quantity", quantity, 1, l.Remaining())
	}
	l.prepared += quantity
	return nil
}

func (l *Line) covered() int {
	total := 0
	for _, r := range l.reservations {
		total += max(0, r.quantity)
	}
	return total
}

func (l *Line) drain(quantity int, lotOrder []uuid.UUID) []Allocation {
	remaining := quantity
	taken := make([]Allocation, 0, len(l.reservations))
	for _, r := range l.ordered(lotOrder) {
		if remaining <= 0 {
			break
		}
		take := min(remaining, r.quantity)
		if take <= 0 {
			continue
		}
		r.quantity -= take
		remaining -= take
		taken = append(taken, Allocation{LotID: r.lotID, Quantity: take})
	}

	kept := l.reservations[:0]
	for _, r := range l.reservations {
		if r.quantity > 0 {
			kept = append(kept, r)
		}
	}
	l.reservations = kept
	return taken
}

func (l *Line) ordered(lotOrder []uuid.UUID) []*Reservation {
	rank := make(map[uuid.UUID]int, len(lotOrder))
	for i, id := range lotOrder {
		rank[id] = i
	}
	out := make([]*Reservation, 0, len(l.reservations))
	var rest []*Reservation
	for _, id := range lotOrder {
		for _, r := range l.reservations {
			if r.lotID == id {
				out = append(out, r)
			}
		}
	}
	for _, r := range l.reservations {
		if _, ok := rank[r.lotID]; !ok {
			rest = append(rest, r)
		}
	}
	return append(out, rest...)
}
