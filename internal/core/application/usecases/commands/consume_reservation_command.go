package commands

import (
	"errors"
	"strings"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrConsumeReservationCommandIsNotConstructed = errors.New(
	"ConsumeReservationCommand must be created via NewConsumeReservationCommand constructor",
)

// ConsumeReservationCommand ships reserved stock of an order line without a
// carton, e.g. a pallet handed over as is.
type ConsumeReservationCommand struct { //nolint:recvcheck //using for validation
	lineID      uuid.UUID
	quantity    int
	reasonNotes string
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewConsumeReservationCommand(lineID uuid.UUID, quantity int, reasonNotes string, actor kernel.Actor) (ConsumeReservationCommand, error) {
	var lineErr, quantityErr error
	if lineID == uuid.Nil {
		lineErr = errs.NewValueIsRequiredError("order line id")
	}
	if quantity <= 0 {
		quantityErr = errs.NewInvalidQuantityError(quantity)
	}
	if err := errors.Join(lineErr, quantityErr, actor.Validate()); err != nil {
		return ConsumeReservationCommand{}, err
	}

	return ConsumeReservationCommand{
		lineID:      lineID,
		quantity:    quantity,
		reasonNotes: strings.TrimSpace(reasonNotes),
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConsumeReservationCommand) Validate() error {
	return c.guard.Validate(ErrConsumeReservationCommandIsNotConstructed)
}

func (c ConsumeReservationCommand) LineID() uuid.UUID   { return c.lineID }
func (c ConsumeReservationCommand) Quantity() int       { return c.quantity }
func (c ConsumeReservationCommand) ReasonNotes() string { return c.reasonNotes }
func (c ConsumeReservationCommand) Actor() kernel.Actor { return c.actor }
