package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/order"
)

type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, options engine.Options) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var cancelled *order.Order
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		cancelled, err = e.Cancel(ctx, cmd.OrderID())
		return err
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}
