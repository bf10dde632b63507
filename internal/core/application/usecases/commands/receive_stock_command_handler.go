package commands

import (
	"context"

	"wms/internal/core/application/engine"
)

// ReceiveStockCommandHandler creates the lot, its IN movement and, when
// requested, the receipt with its reference in one transaction.
type ReceiveStockCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
}

func NewReceiveStockCommandHandler(uowFactory UoWFactory, options engine.Options) ReceiveStockCommandHandler {
	return ReceiveStockCommandHandler{
		uowFactory: uowFactory,
		options:    options,
	}
}

func (h *ReceiveStockCommandHandler) Handle(ctx context.Context, cmd ReceiveStockCommand) (engine.ReceiveResult, error) {
	if err := cmd.Validate(); err != nil {
		return engine.ReceiveResult{}, err
	}

	in := engine.ReceiveInput{
		ProductID:  cmd.ProductID(),
		Quantity:   cmd.Quantity(),
		Location:   cmd.Location(),
		Attributes: cmd.Attributes(),
		Actor:      cmd.Actor(),
	}
	if r := cmd.Receipt(); r != nil {
		in.Receipt = &engine.ReceiptRequest{Reference: r.Reference, Donor: r.Donor}
	}

	var result engine.ReceiveResult
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		result, err = e.Receive(ctx, in)
		return err
	})
	if err != nil {
		return engine.ReceiveResult{}, err
	}
	return result, nil
}
