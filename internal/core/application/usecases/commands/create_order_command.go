package commands

import (
	"errors"
	"strings"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLineInput is one requested product quantity of a new order.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderCommand registers a draft order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(uuid.New(), "ORD-2026-001", []OrderLineInput{
//	    {ProductID: soapID, Quantity: 12},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   uuid.UUID
	reference string
	lines     []OrderLineInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order identity and every line. A
// product may appear on one line only.
func NewCreateOrderCommand(orderID uuid.UUID, reference string, lines []OrderLineInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReference(reference),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() uuid.UUID { return c.orderID }
func (c CreateOrderCommand) Reference() string  { return c.reference }

func (c CreateOrderCommand) Lines() []OrderLineInput {
	return append([]OrderLineInput(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderID(orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setReference(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	c.reference = reference
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return errs.NewValueIsRequiredError("product id")
		}
		if line.Quantity <= 0 {
			return errs.NewInvalidQuantityError(line.Quantity)
		}
		if seen[line.ProductID] {
			return errs.NewValueIsInvalidError("lines")
		}
		seen[line.ProductID] = true
	}
	c.lines = append([]OrderLineInput(nil), lines...)
	return nil
}
