package commands

import (
	"context"

	"wms/internal/core/domain/model/carton"
)

type CreateCartonFormatCommandHandler struct {
	uowFactory CartonFormatUoWFactory
}

func NewCreateCartonFormatCommandHandler(uowFactory CartonFormatUoWFactory) CreateCartonFormatCommandHandler {
	return CreateCartonFormatCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateCartonFormatCommandHandler) Handle(ctx context.Context, cmd CreateCartonFormatCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	f, err := carton.NewFormat(cmd.FormatID(), cmd.Name(), cmd.Dimensions(), cmd.MaxWeightG(), cmd.IsDefault())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CartonFormatRepository().Add(ctx, f); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
