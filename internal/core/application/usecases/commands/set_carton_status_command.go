package commands

import (
	"errors"
	"strings"

	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrSetCartonStatusCommandIsNotConstructed = errors.New(
	"SetCartonStatusCommand must be created via NewSetCartonStatusCommand constructor",
)

// SetCartonStatusCommand moves a carton to another status with a reason
// kept in its status history.
type SetCartonStatusCommand struct { //nolint:recvcheck //using for validation
	cartonID uuid.UUID
	status   carton.Status
	reason   string
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewSetCartonStatusCommand(cartonID uuid.UUID, status carton.Status, reason string, actor kernel.Actor) (SetCartonStatusCommand, error) {
	var cartonErr error
	if cartonID == uuid.Nil {
		cartonErr = errs.NewValueIsRequiredError("carton id")
	}
	if err := errors.Join(cartonErr, status.Validate(), actor.Validate()); err != nil {
		return SetCartonStatusCommand{}, err
	}

	return SetCartonStatusCommand{
		cartonID: cartonID,
		status:   status,
		reason:   strings.TrimSpace(reason),
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetCartonStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetCartonStatusCommandIsNotConstructed)
}

func (c SetCartonStatusCommand) CartonID() uuid.UUID   { return c.cartonID }
func (c SetCartonStatusCommand) Status() carton.Status { return c.status }
func (c SetCartonStatusCommand) Reason() string        { return c.reason }
func (c SetCartonStatusCommand) Actor() kernel.Actor   { return c.actor }
