package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrLotIsNotConstructed = errors.New("Lot must be created via NewLot constructor")

// LotAttributes are the optional properties given when stock is received.
// A zero Status means "use the product default".
type LotAttributes struct {
	LotCode           string
	ExpiresOn         *time.Time
	ReceivedOn        *time.Time
	Status            LotStatus
	StorageConditions string
	ReceiptID         *uuid.UUID
}

// Lot is a physical batch of one product at one location.
//
// Invariants:
//   - 0 <= reserved <= onHand
//   - onHand never goes negative; a lot is zeroed, never deleted
type Lot struct {
	id                uuid.UUID
	productID         uuid.UUID
	lotCode           string
	onHand            int
	reserved          int
	status            LotStatus
	expiresOn         *time.Time
	receivedOn        *time.Time
	location          kernel.Location
	receiptID         *uuid.UUID
	storageConditions string
	guard             guard.ConstructorGuard
}

// NewLot creates a freshly received lot holding quantity units.
func NewLot(
	id uuid.UUID,
	product *Product,
	quantity int,
	location kernel.Location,
	attrs LotAttributes,
) (*Lot, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(quantity)
	}

	status := attrs.Status
	if status == LotStatusUnknown {
		status = LotStatusAvailable
		if product.QuarantineDefault() {
			status = LotStatusQuarantined
		}
	}

	conditions := strings.TrimSpace(attrs.StorageConditions)
	if conditions == "" {
		conditions = product.StorageConditions()
	}

	return RestoreLot(
		id, product.ID(), attrs.LotCode, quantity, 0, status,
		attrs.ExpiresOn, attrs.ReceivedOn, location, attrs.ReceiptID, conditions,
	)
}

// RestoreLot rebuilds a lot read from storage and re-checks its invariants.
func RestoreLot(
	id, productID uuid.UUID,
	lotCode string,
	onHand, reserved int,
	status LotStatus,
	expiresOn, receivedOn *time.Time,
	location kernel.Location,
	receiptID *uuid.UUID,
	storageConditions string,
) (*Lot, error) {
	lot := &Lot{
		lotCode:           strings.TrimSpace(lotCode),
		expiresOn:         dateOnly(expiresOn),
		receivedOn:        dateOnly(receivedOn),
		receiptID:         receiptID,
		storageConditions: storageConditions,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("id", id),
		requireID("product", productID),
		status.Validate(),
		location.Validate(),
		checkQuantities(onHand, reserved),
	); err != nil {
		return nil, err
	}

	lot.id = id
	lot.productID = productID
	lot.onHand = onHand
	lot.reserved = reserved
	lot.status = status
	lot.location = location
	return lot, nil
}

func (l *Lot) Validate() error {
	if l == nil {
		return ErrLotIsNotConstructed
	}
	return l.guard.Validate(ErrLotIsNotConstructed)
}

func (l *Lot) ID() uuid.UUID             { return l.id }
func (l *Lot) ProductID() uuid.UUID      { return l.productID }
func (l *Lot) LotCode() string           { return l.lotCode }
func (l *Lot) OnHand() int               { return l.onHand }
func (l *Lot) Reserved() int             { return l.reserved }
func (l *Lot) Status() LotStatus         { return l.status }
func (l *Lot) ExpiresOn() *time.Time     { return l.expiresOn }
func (l *Lot) ReceivedOn() *time.Time    { return l.receivedOn }
func (l *Lot) Location() kernel.Location { return l.location }
func (l *Lot) ReceiptID() *uuid.UUID     { return l.receiptID }
func (l *Lot) StorageConditions() string { return l.storageConditions }

// Available is on hand minus reserved, never below zero.
func (l *Lot) Available() int {
	return max(0, l.onHand-l.reserved)
}

// IsAllocatable reports whether FEFO may draw from the lot.
func (l *Lot) IsAllocatable() bool {
	return l.status == LotStatusAvailable && l.Available() > 0
}

// Adjust changes on hand by delta. It refuses to go negative or below the
// reserved quantity.
func (l *Lot) Adjust(delta int) error {
	if delta == 0 {
		return errs.NewBusinessRuleError(errs.ErrInvalidQuantity, "adjustment delta must not be 0")
	}
	next := l.onHand + delta
	if next < 0 {
		return errs.NewInsufficientStockError(l.onHand)
	}
	if delta < 0 && next < l.reserved {
		return errs.NewReservedStockConflictError(next, l.reserved)
	}
	l.onHand = next
	return nil
}

// MoveTo relocates the whole lot.
func (l *Lot) MoveTo(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if l.location.IsEqual(location) {
		return errs.NewSameLocationError(location.String())
	}
	l.location = location
	return nil
}

// Take hard-consumes quantity from the unreserved part of the lot.
func (l *Lot) Take(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError(quantity)
	}
	if quantity > l.Available() {
		return errs.NewInsufficientStockError(l.Available())
	}
	l.onHand -= quantity
	return nil
}

// Restock puts quantity back on hand, e.g. when a carton is unpacked.
func (l *Lot) Restock(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError(quantity)
	}
	l.onHand += quantity
	return nil
}

// Reserve soft-commits quantity of the available stock.
func (l *Lot) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError(quantity)
	}
	if quantity > l.Available() {
		return errs.NewInsufficientStockError(l.Available())
	}
	l.reserved += quantity
	return nil
}

// ReleaseReserved gives back a soft reservation. Reserved is clamped at zero
// so that earlier drift does not block the release.
func (l *Lot) ReleaseReserved(quantity int) {
	l.reserved = max(0, l.reserved-quantity)
}

// ConsumeReserved turns a soft reservation into hard consumption: on hand and
// reserved both drop by quantity (reserved clamped at zero).
func (l *Lot) ConsumeReserved(quantity int) error {
	if quantity <= 0 {
		return errs.NewInvalidQuantityError(quantity)
	}
	if quantity > l.onHand {
		return errs.NewInsufficientStockError(l.onHand)
	}
	l.onHand -= quantity
	l.reserved = min(l.onHand, max(0, l.reserved-quantity))
	return nil
}

// Expire marks an available lot past its expiry date as expired. It returns
// false when nothing changed.
func (l *Lot) Expire(today time.Time) bool {
	if l.status != LotStatusAvailable || l.expiresOn == nil {
		return false
	}
	if !l.expiresOn.Before(*dateOnly(&today)) {
		return false
	}
	l.status = LotStatusExpired
	return true
}

// SetStatus changes the allocation status, e.g. releasing a quarantine.
func (l *Lot) SetStatus(status LotStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}

func checkQuantities(onHand, reserved int) error {
	if onHand < 0 {
		return errs.NewValueIsOutOfRangeError("quantity on hand", onHand, 0, "unbounded")
	}
	if reserved < 0 || reserved > onHand {
		return errs.NewValueIsOutOfRangeError("quantity reserved", reserved, 0, onHand)
	}
	return nil
}

func requireID(name string, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// Date truncates t to a UTC calendar date, the form lots store their dates in.
func Date(t time.Time) time.Time {
	return *dateOnly(&t)
}

func (l *Lot) String() string {
	return fmt.Sprintf("lot %s (%d on hand, %d reserved)", l.id, l.onHand, l.reserved)
}
