package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
)

type SetCartonStatusCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewSetCartonStatusCommandHandler(uowFactory UoWFactory, options engine.Options) SetCartonStatusCommandHandler {
	return SetCartonStatusCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *SetCartonStatusCommandHandler) Handle(ctx context.Context, cmd SetCartonStatusCommand) (*carton.Carton, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var updated *carton.Carton
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		updated, err = e.SetCartonStatus(ctx, engine.SetCartonStatusInput{
			CartonID: cmd.CartonID(),
			Status:   cmd.Status(),
			Reason:   cmd.Reason(),
			Actor:    cmd.Actor(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
