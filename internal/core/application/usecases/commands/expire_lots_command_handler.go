package commands

import (
	"context"

	"wms/internal/core/application/engine"
)

type ExpireLotsCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewExpireLotsCommandHandler(uowFactory UoWFactory, options engine.Options) ExpireLotsCommandHandler {
	return ExpireLotsCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

// Handle returns how many lots were marked expired.
func (h *ExpireLotsCommandHandler) Handle(ctx context.Context, cmd ExpireLotsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	expired := 0
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		expired, err = e.ExpireLots(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}
