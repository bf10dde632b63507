package commands

import (
	"errors"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand releases every reservation of an order and cancels it.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID uuid.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID uuid.UUID) (CancelOrderCommand, error) {
	if orderID == uuid.Nil {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("order id")
	}
	return CancelOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() uuid.UUID { return c.orderID }
