package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/stock"
)

type ConsumeReservationCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewConsumeReservationCommandHandler(uowFactory UoWFactory, options engine.Options) ConsumeReservationCommandHandler {
	return ConsumeReservationCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

// Handle journals the consumed quantity as OUT movements, one per lot.
func (h *ConsumeReservationCommandHandler) Handle(ctx context.Context, cmd ConsumeReservationCommand) ([]engine.Consumed, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var consumed []engine.Consumed
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		consumed, err = e.ConsumeReserved(ctx, engine.ConsumeReservedInput{
			LineID:       cmd.LineID(),
			Quantity:     cmd.Quantity(),
			MovementType: stock.MovementOut,
			Context:      stock.MovementContext{ReasonNotes: cmd.ReasonNotes()},
			Actor:        cmd.Actor(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}
