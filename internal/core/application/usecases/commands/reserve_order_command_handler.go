package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/order"
)

// ReserveOrderCommandHandler reserves an order all-or-nothing: when one line
// cannot be covered the transaction is rolled back and no lot changes.
type ReserveOrderCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewReserveOrderCommandHandler(uowFactory UoWFactory, options engine.Options) ReserveOrderCommandHandler {
	return ReserveOrderCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *ReserveOrderCommandHandler) Handle(ctx context.Context, cmd ReserveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var reserved *order.Order
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		reserved, err = e.Reserve(ctx, cmd.OrderID())
		return err
	})
	if err != nil {
		return nil, err
	}
	return reserved, nil
}
