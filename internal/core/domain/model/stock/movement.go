package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// MovementType says why a lot quantity changed.
type MovementType int

const (
	MovementUnknown MovementType = iota
	MovementIn
	MovementOut
	MovementAdjust
	MovementTransfer
	MovementPrecondition
	MovementUnpack
)

func movementTypeCodes() map[MovementType]string {
	return map[MovementType]string{
		MovementIn:           "in",
		MovementOut:          "out",
		MovementAdjust:       "adjust",
		MovementTransfer:     "transfer",
		MovementPrecondition: "precondition",
		MovementUnpack:       "unpack",
	}
}

func ParseMovementType(code string) (MovementType, error) {
	for t, c := range movementTypeCodes() {
		if c == code {
			return t, nil
		}
	}
	return MovementUnknown, errs.NewValueIsInvalidErrorWithCause(
		"movement type", fmt.Errorf("%q is not a movement type", code))
}

func (t MovementType) Validate() error {
	if _, ok := movementTypeCodes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%d is not a valid type", t))
	}
	return nil
}

func (t MovementType) String() string {
	if code, ok := movementTypeCodes()[t]; ok {
		return code
	}
	return "unknown"
}

// MovementContext links a movement to the document that caused it. Every
// field is optional.
type MovementContext struct {
	CartonID    *uuid.UUID
	ShipmentID  *uuid.UUID
	OrderLineID *uuid.UUID
	ReasonCode  string
	ReasonNotes string
}

// Movement is an append-only audit entry. It has no setters.
type Movement struct {
	id           uuid.UUID
	movementType MovementType
	productID    uuid.UUID
	lotID        uuid.UUID
	quantity     int
	fromLocation *kernel.Location
	toLocation   *kernel.Location
	context      MovementContext
	actor        kernel.Actor
	createdAt    time.Time
}

// NewMovement records quantity units of lot moving from one location to
// another; either side may be nil (stock entering or leaving the ledger).
// Only a transfer may carry 0 units, for a lot moved with nothing on hand.
func NewMovement(
	movementType MovementType,
	lot *Lot,
	quantity int,
	from, to *kernel.Location,
	mc MovementContext,
	actor kernel.Actor,
	at time.Time,
) (*Movement, error) {
	if err := errors.Join(movementType.Validate(), lot.Validate()); err != nil {
		return nil, err
	}
	if quantity < 0 || (quantity == 0 && movementType != MovementTransfer) {
		return nil, errs.NewInvalidQuantityError(quantity)
	}
	if from == nil && to == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("location", errors.New("movement needs a source or a destination"))
	}

	return RestoreMovement(uuid.New(), movementType, lot.ProductID(), lot.ID(), quantity, from, to, mc, actor, at), nil
}

// RestoreMovement rebuilds a movement read from storage.
func RestoreMovement(
	id uuid.UUID,
	movementType MovementType,
	productID, lotID uuid.UUID,
	quantity int,
	from, to *kernel.Location,
	mc MovementContext,
	actor kernel.Actor,
	createdAt time.Time,
) *Movement {
	mc.ReasonCode = strings.TrimSpace(mc.ReasonCode)
	mc.ReasonNotes = strings.TrimSpace(mc.ReasonNotes)
	return &Movement{
		id:           id,
		movementType: movementType,
		productID:    productID,
		lotID:        lotID,
		quantity:     quantity,
		fromLocation: from,
		toLocation:   to,
		context:      mc,
		actor:        actor,
		createdAt:    createdAt,
	}
}

func (m *Movement) ID() uuid.UUID                  { return m.id }
func (m *Movement) Type() MovementType             { return m.movementType }
func (m *Movement) ProductID() uuid.UUID           { return m.productID }
func (m *Movement) LotID() uuid.UUID               { return m.lotID }
func (m *Movement) Quantity() int                  { return m.quantity }
func (m *Movement) FromLocation() *kernel.Location { return m.fromLocation }
func (m *Movement) ToLocation() *kernel.Location   { return m.toLocation }
func (m *Movement) Context() MovementContext       { return m.context }
func (m *Movement) Actor() kernel.Actor            { return m.actor }
func (m *Movement) CreatedAt() time.Time           { return m.createdAt }
