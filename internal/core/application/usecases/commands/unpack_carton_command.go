package commands

import (
	"errors"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrUnpackCartonCommandIsNotConstructed = errors.New(
	"UnpackCartonCommand must be created via NewUnpackCartonCommand constructor",
)

// UnpackCartonCommand returns every item of a carton to its lot.
type UnpackCartonCommand struct { //nolint:recvcheck //using for validation
	cartonID uuid.UUID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewUnpackCartonCommand(cartonID uuid.UUID, actor kernel.Actor) (UnpackCartonCommand, error) {
	var cartonErr error
	if cartonID == uuid.Nil {
		cartonErr = errs.NewValueIsRequiredError("carton id")
	}
	if err := errors.Join(cartonErr, actor.Validate()); err != nil {
		return UnpackCartonCommand{}, err
	}

	return UnpackCartonCommand{
		cartonID: cartonID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UnpackCartonCommand) Validate() error {
	return c.guard.Validate(ErrUnpackCartonCommandIsNotConstructed)
}

func (c UnpackCartonCommand) CartonID() uuid.UUID { return c.cartonID }
func (c UnpackCartonCommand) Actor() kernel.Actor { return c.actor }
