package commands

import (
	"errors"
	"strings"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrAdjustLotCommandIsNotConstructed = errors.New(
	"AdjustLotCommand must be created via NewAdjustLotCommand constructor",
)

// AdjustLotCommand corrects the on hand quantity of a lot after a count, a
// breakage or a loss.
type AdjustLotCommand struct { //nolint:recvcheck //using for validation
	lotID       uuid.UUID
	delta       int
	reasonCode  string
	reasonNotes string
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewAdjustLotCommand(lotID uuid.UUID, delta int, reasonCode, reasonNotes string, actor kernel.Actor) (AdjustLotCommand, error) {
	var lotErr, deltaErr error
	if lotID == uuid.Nil {
		lotErr = errs.NewValueIsRequiredError("lot id")
	}
	if delta == 0 {
		deltaErr = errs.NewInvalidQuantityError(delta)
	}
	if err := errors.Join(lotErr, deltaErr, actor.Validate()); err != nil {
		return AdjustLotCommand{}, err
	}

	return AdjustLotCommand{
		lotID:       lotID,
		delta:       delta,
		reasonCode:  strings.TrimSpace(reasonCode),
		reasonNotes: strings.TrimSpace(reasonNotes),
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustLotCommand) Validate() error {
	return c.guard.Validate(ErrAdjustLotCommandIsNotConstructed)
}

func (c AdjustLotCommand) LotID() uuid.UUID    { return c.lotID }
func (c AdjustLotCommand) Delta() int          { return c.delta }
func (c AdjustLotCommand) ReasonCode() string  { return c.reasonCode }
func (c AdjustLotCommand) ReasonNotes() string { return c.reasonNotes }
func (c AdjustLotCommand) Actor() kernel.Actor { return c.actor }
