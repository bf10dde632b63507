package commands

import (
	"context"

	"wms/internal/core/application/engine"
)

type AssignReadyCartonsCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewAssignReadyCartonsCommandHandler(uowFactory UoWFactory, options engine.Options) AssignReadyCartonsCommandHandler {
	return AssignReadyCartonsCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *AssignReadyCartonsCommandHandler) Handle(ctx context.Context, cmd AssignReadyCartonsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	assigned := 0
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		assigned, err = e.AssignReadyCartons(ctx, cmd.OrderID())
		return err
	})
	if err != nil {
		return 0, err
	}
	return assigned, nil
}
