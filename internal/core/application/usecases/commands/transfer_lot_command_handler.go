package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/stock"
)

type TransferLotCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewTransferLotCommandHandler(uowFactory UoWFactory, options engine.Options) TransferLotCommandHandler {
	return TransferLotCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *TransferLotCommandHandler) Handle(ctx context.Context, cmd TransferLotCommand) (*stock.Lot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lot *stock.Lot
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		lot, err = e.Transfer(ctx, engine.TransferInput{
			LotID:       cmd.LotID(),
			To:          cmd.To(),
			ReasonNotes: cmd.ReasonNotes(),
			Actor:       cmd.Actor(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}
