package commands

import (
	"errors"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrPrepareOrderCommandIsNotConstructed = errors.New(
	"PrepareOrderCommand must be created via NewPrepareOrderCommand constructor",
)

// PrepareOrderCommand fulfils a reserved order into cartons of its shipment.
type PrepareOrderCommand struct { //nolint:recvcheck //using for validation
	orderID uuid.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewPrepareOrderCommand(orderID uuid.UUID, actor kernel.Actor) (PrepareOrderCommand, error) {
	var orderErr error
	if orderID == uuid.Nil {
		orderErr = errs.NewValueIsRequiredError("order id")
	}
	if err := errors.Join(orderErr, actor.Validate()); err != nil {
		return PrepareOrderCommand{}, err
	}
	return PrepareOrderCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c PrepareOrderCommand) Validate() error {
	return c.guard.Validate(ErrPrepareOrderCommandIsNotConstructed)
}

func (c PrepareOrderCommand) OrderID() uuid.UUID  { return c.orderID }
func (c PrepareOrderCommand) Actor() kernel.Actor { return c.actor }
