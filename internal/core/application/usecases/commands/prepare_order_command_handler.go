package commands

import (
	"context"
	"log/slog"

	"wms/internal/core/application/engine"
)

type PrepareOrderCommandHandler struct {
	uowFactory UoWFactory
	options    engine.Options
	logger     *slog.Logger
}

func NewPrepareOrderCommandHandler(uowFactory UoWFactory, options engine.Options, logger *slog.Logger) PrepareOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return PrepareOrderCommandHandler{
		uowFactory: uowFactory,
		options:    options,
		logger:     logger.With("component", "prepare-order"),
	}
}

// Handle returns how many pre-packed cartons were assigned to the order.
func (h *PrepareOrderCommandHandler) Handle(ctx context.Context, cmd PrepareOrderCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	assigned := 0
	err := inEngine(ctx, h.uowFactory, h.options, func(e *engine.Engine) error {
		var err error
		assigned, err = e.Prepare(ctx, cmd.OrderID(), cmd.Actor())
		return err
	})
	if err != nil {
		h.logger.WarnContext(ctx, "order preparation failed", "order_id", cmd.OrderID(), "error", err)
		return 0, err
	}

	h.logger.InfoContext(ctx, "order prepared", "order_id", cmd.OrderID(), "ready_cartons", assigned)
	return assigned, nil
}
