package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
)

type UnpackCartonCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewUnpackCartonCommandHandler(uowFactory UoWFactory, options engine.Options) UnpackCartonCommandHandler {
	return UnpackCartonCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *UnpackCartonCommandHandler) Handle(ctx context.Context, cmd UnpackCartonCommand) (*carton.Carton, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var unpacked *carton.Carton
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		unpacked, err = e.Unpack(ctx, engine.UnpackInput{CartonID: cmd.CartonID(), Actor: cmd.Actor()})
		return err
	})
	if err != nil {
		return nil, err
	}
	return unpacked, nil
}
