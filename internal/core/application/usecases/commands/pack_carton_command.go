package commands

import (
	"errors"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrPackCartonCommandIsNotConstructed = errors.New(
	"PackCartonCommand must be created via NewPackCartonCommand constructor",
)

// PackCartonCommand takes quantity units of a product from stock (FEFO) and
// packs them into a carton.
type PackCartonCommand struct { //nolint:recvcheck //using for validation
	productID uuid.UUID
	quantity  int
	target    CartonTarget
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewPackCartonCommand(productID uuid.UUID, quantity int, target CartonTarget, actor kernel.Actor) (PackCartonCommand, error) {
	var productErr, quantityErr error
	if productID == uuid.Nil {
		productErr = errs.NewValueIsRequiredError("product id")
	}
	if quantity <= 0 {
		quantityErr = errs.NewInvalidQuantityError(quantity)
	}
	if err := errors.Join(productErr, quantityErr, target.validate(), actor.Validate()); err != nil {
		return PackCartonCommand{}, err
	}

	return PackCartonCommand{
		productID: productID,
		quantity:  quantity,
		target:    target,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PackCartonCommand) Validate() error {
	return c.guard.Validate(ErrPackCartonCommandIsNotConstructed)
}

func (c PackCartonCommand) ProductID() uuid.UUID { return c.productID }
func (c PackCartonCommand) Quantity() int        { return c.quantity }
func (c PackCartonCommand) Target() CartonTarget { return c.target }
func (c PackCartonCommand) Actor() kernel.Actor  { return c.actor }
