package commands

import (
	"errors"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrPackFromReservationCommandIsNotConstructed = errors.New(
	"PackFromReservationCommand must be created via NewPackFromReservationCommand constructor",
)

// PackFromReservationCommand packs part of an order line using the stock
// the line has reserved.
type PackFromReservationCommand struct { //nolint:recvcheck //using for validation
	lineID   uuid.UUID
	quantity int
	target   CartonTarget
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewPackFromReservationCommand(
	lineID uuid.UUID,
	quantity int,
	target CartonTarget,
	actor kernel.Actor,
) (PackFromReservationCommand, error) {
	var lineErr, quantityErr error
	if lineID == uuid.Nil {
		lineErr = errs.NewValueIsRequiredError("order line id")
	}
	if quantity <= 0 {
		quantityErr = errs.NewInvalidQuantityError(quantity)
	}
	if err := errors.Join(lineErr, quantityErr, target.validate(), actor.Validate()); err != nil {
		return PackFromReservationCommand{}, err
	}

	return PackFromReservationCommand{
		lineID:   lineID,
		quantity: quantity,
		target:   target,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c PackFromReservationCommand) Validate() error {
	return c.guard.Validate(ErrPackFromReservationCommandIsNotConstructed)
}

func (c PackFromReservationCommand) LineID() uuid.UUID    { return c.lineID }
func (c PackFromReservationCommand) Quantity() int        { return c.quantity }
func (c PackFromReservationCommand) Target() CartonTarget { return c.target }
func (c PackFromReservationCommand) Actor() kernel.Actor  { return c.actor }
