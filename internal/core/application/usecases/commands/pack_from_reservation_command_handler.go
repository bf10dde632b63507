package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
)

type PackFromReservationCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewPackFromReservationCommandHandler(uowFactory UoWFactory, options engine.Options) PackFromReservationCommandHandler {
	return PackFromReservationCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *PackFromReservationCommandHandler) Handle(ctx context.Context, cmd PackFromReservationCommand) (*carton.Carton, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var packed *carton.Carton
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		packed, err = e.PackFromReservation(ctx, engine.PackFromReservationInput{
			LineID:   cmd.LineID(),
			Quantity: cmd.Quantity(),
			Carton:   cmd.Target().prepareInput(cmd.Actor()),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return packed, nil
}
