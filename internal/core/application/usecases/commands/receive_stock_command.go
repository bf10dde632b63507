package commands

import (
	"errors"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrReceiveStockCommandIsNotConstructed = errors.New(
	"ReceiveStockCommand must be created via NewReceiveStockCommand constructor",
)

// ReceiptInput files the received lot under a receipt. An empty Reference
// asks for a generated one; a nil Donor is an anonymous receipt.
type ReceiptInput struct {
	Reference string
	Donor     *stock.Donor
}

// ReceiveStockCommand brings quantity units of a product into stock as a
// new lot.
type ReceiveStockCommand struct { //nolint:recvcheck //using for validation
	productID  uuid.UUID
	quantity   int
	location   *kernel.Location
	attributes stock.LotAttributes
	receipt    *ReceiptInput
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewReceiveStockCommand(
	productID uuid.UUID,
	quantity int,
	location *kernel.Location,
	attributes stock.LotAttributes,
	receipt *ReceiptInput,
	actor kernel.Actor,
) (ReceiveStockCommand, error) {
	var productErr, quantityErr, locationErr error
	if productID == uuid.Nil {
		productErr = errs.NewValueIsRequiredError("product id")
	}
	if quantity <= 0 {
		quantityErr = errs.NewInvalidQuantityError(quantity)
	}
	if location != nil {
		locationErr = location.Validate()
	}
	if err := errors.Join(productErr, quantityErr, locationErr, actor.Validate()); err != nil {
		return ReceiveStockCommand{}, err
	}

	return ReceiveStockCommand{
		productID:  productID,
		quantity:   quantity,
		location:   location,
		attributes: attributes,
		receipt:    receipt,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveStockCommand) Validate() error {
	return c.guard.Validate(ErrReceiveStockCommandIsNotConstructed)
}

func (c ReceiveStockCommand) ProductID() uuid.UUID            { return c.productID }
func (c ReceiveStockCommand) Quantity() int                   { return c.quantity }
func (c ReceiveStockCommand) Location() *kernel.Location      { return c.location }
func (c ReceiveStockCommand) Attributes() stock.LotAttributes { return c.attributes }
func (c ReceiveStockCommand) Receipt() *ReceiptInput          { return c.receipt }
func (c ReceiveStockCommand) Actor() kernel.Actor             { return c.actor }
