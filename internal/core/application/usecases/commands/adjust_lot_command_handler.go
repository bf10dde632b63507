package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/stock"
)

type AdjustLotCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewAdjustLotCommandHandler(uowFactory UoWFactory, options engine.Options) AdjustLotCommandHandler {
	return AdjustLotCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *AdjustLotCommandHandler) Handle(ctx context.Context, cmd AdjustLotCommand) (*stock.Lot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lot *stock.Lot
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		lot, err = e.Adjust(ctx, engine.AdjustInput{
			LotID:       cmd.LotID(),
			Delta:       cmd.Delta(),
			ReasonCode:  cmd.ReasonCode(),
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
