package commands

import (
	"context"
	"errors"

	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle adds the product. A SKU that already exists surfaces as a
// duplicate key error.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := stock.NewProduct(cmd.ProductID(), cmd.SKU(), cmd.Name(), cmd.RootCategory())
	if err != nil {
		return err
	}
	attrs := cmd.Attributes()
	if err = errors.Join(
		p.SetWeightG(attrs.WeightG),
		p.SetVolumeCm3(attrs.VolumeCm3),
		p.SetDefaultLocation(attrs.DefaultLocation),
		p.SetKitComponents(attrs.KitComponents),
	); err != nil {
		return err
	}
	p.SetQuarantineDefault(attrs.QuarantineDefault)
	p.SetStorageConditions(attrs.StorageConditions)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = h.ensureComponentsExist(ctx, uow, p); err != nil {
		return err
	}
	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateProductCommandHandler) ensureComponentsExist(ctx context.Context, uow ProductUoW, p *stock.Product) error {
	if !p.IsKit() {
		return nil
	}
	kit := p.KitComponents()
	ids := make([]uuid.UUID, 0, len(kit))
	for _, c := range kit {
		ids = append(ids, c.ComponentID)
	}
	found, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return errs.NewObjectNotFoundError("kit component", id)
		}
	}
	return nil
}
