package commands

import (
	"errors"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrReleaseReservationCommandIsNotConstructed = errors.New(
	"ReleaseReservationCommand must be created via NewReleaseReservationCommand constructor",
)

// ReleaseReservationCommand gives back part of an order line's reservation.
type ReleaseReservationCommand struct { //nolint:recvcheck //using for validation
	lineID   uuid.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewReleaseReservationCommand(lineID uuid.UUID, quantity int) (ReleaseReservationCommand, error) {
	var lineErr, quantityErr error
	if lineID == uuid.Nil {
		lineErr = errs.NewValueIsRequiredError("order line id")
	}
	if quantity <= 0 {
		quantityErr = errs.NewInvalidQuantityError(quantity)
	}
	if err := errors.Join(lineErr, quantityErr); err != nil {
		return ReleaseReservationCommand{}, err
	}

	return ReleaseReservationCommand{lineID: lineID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseReservationCommand) Validate() error {
	return c.guard.Validate(ErrReleaseReservationCommandIsNotConstructed)
}

func (c ReleaseReservationCommand) LineID() uuid.UUID { return c.lineID }
func (c ReleaseReservationCommand) Quantity() int     { return c.quantity }
