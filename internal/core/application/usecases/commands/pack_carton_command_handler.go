package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
)

type PackCartonCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewPackCartonCommandHandler(uowFactory UoWFactory, options engine.Options) PackCartonCommandHandler {
	return PackCartonCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

// Handle returns the packed carton with its final code.
func (h *PackCartonCommandHandler) Handle(ctx context.Context, cmd PackCartonCommand) (*carton.Carton, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var packed *carton.Carton
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		packed, err = e.Pack(ctx, engine.PackInput{
			ProductID: cmd.ProductID(),
			Quantity:  cmd.Quantity(),
			Carton:    cmd.Target().prepareInput(cmd.Actor()),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return packed, nil
}
