package commands

import (
	"context"

	"wms/internal/core/domain/model/shipment"
)

type UpdateShipmentCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateShipmentCommandHandler(uowFactory UoWFactory) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shp, err := uow.ShipmentRepository().GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}
	if status := cmd.Status(); status != nil {
		if err = shp.Advance(*status); err != nil {
			return nil, err
		}
	}
	if disputed := cmd.Disputed(); disputed != nil {
		shp.SetDisputed(*disputed)
	}

	if err = uow.ShipmentRepository().Update(ctx, shp); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return shp, nil
}
