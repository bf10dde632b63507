package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/order"
)

type ReleaseReservationCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewReleaseReservationCommandHandler(uowFactory UoWFactory, options engine.Options) ReleaseReservationCommandHandler {
	return ReleaseReservationCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *ReleaseReservationCommandHandler) Handle(ctx context.Context, cmd ReleaseReservationCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var released *order.Order
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		released, err = e.Release(ctx, engine.ReleaseInput{LineID: cmd.LineID(), Quantity: cmd.Quantity()})
		return err
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}
