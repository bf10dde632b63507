package commands

import (
	"errors"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrAssignReadyCartonsCommandIsNotConstructed = errors.New(
	"AssignReadyCartonsCommand must be created via NewAssignReadyCartonsCommand constructor",
)

// AssignReadyCartonsCommand attaches pre-packed cartons to an order's
// shipment without packing anything new.
type AssignReadyCartonsCommand struct { //nolint:recvcheck //using for validation
	orderID uuid.UUID

	guard guard.ConstructorGuard
}

func NewAssignReadyCartonsCommand(orderID uuid.UUID) (AssignReadyCartonsCommand, error) {
	if orderID == uuid.Nil {
		return AssignReadyCartonsCommand{}, errs.NewValueIsRequiredError("order id")
	}
	return AssignReadyCartonsCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignReadyCartonsCommand) Validate() error {
	return c.guard.Validate(ErrAssignReadyCartonsCommandIsNotConstructed)
}

func (c AssignReadyCartonsCommand) OrderID() uuid.UUID { return c.orderID }
