package commands

import (
	"errors"
	"strings"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrTransferLotCommandIsNotConstructed = errors.New(
	"TransferLotCommand must be created via NewTransferLotCommand constructor",
)

// TransferLotCommand moves a whole lot to another location.
type TransferLotCommand struct { //nolint:recvcheck //using for validation
	lotID       uuid.UUID
	to          kernel.Location
	reasonNotes string
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewTransferLotCommand(lotID uuid.UUID, to kernel.Location, reasonNotes string, actor kernel.Actor) (TransferLotCommand, error) {
	var lotErr error
	if lotID == uuid.Nil {
		lotErr = errs.NewValueIsRequiredError("lot id")
	}
	if err := errors.Join(lotErr, to.Validate(), actor.Validate()); err != nil {
		return TransferLotCommand{}, err
	}

	return TransferLotCommand{
		lotID:       lotID,
		to:          to,
		reasonNotes: strings.TrimSpace(reasonNotes),
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c TransferLotCommand) Validate() error {
	return c.guard.Validate(ErrTransferLotCommandIsNotConstructed)
}

func (c TransferLotCommand) LotID() uuid.UUID    { return c.lotID }
func (c TransferLotCommand) To() kernel.Location { return c.to }
func (c TransferLotCommand) ReasonNotes() string { return c.reasonNotes }
func (c TransferLotCommand) Actor() kernel.Actor { return c.actor }
