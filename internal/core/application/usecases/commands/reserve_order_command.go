package commands

import (
	"errors"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrReserveOrderCommandIsNotConstructed = errors.New(
	"ReserveOrderCommand must be created via NewReserveOrderCommand constructor",
)

// ReserveOrderCommand reserves stock for every line of an order that is
// still short. It can be repeated after a partial release.
type ReserveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID uuid.UUID

	guard guard.ConstructorGuard
}

func NewReserveOrderCommand(orderID uuid.UUID) (ReserveOrderCommand, error) {
	if orderID == uuid.Nil {
		return ReserveOrderCommand{}, errs.NewValueIsRequiredError("order id")
	}
	return ReserveOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReserveOrderCommand) Validate() error {
	return c.guard.Validate(ErrReserveOrderCommandIsNotConstructed)
}

func (c ReserveOrderCommand) OrderID() uuid.UUID { return c.orderID }
