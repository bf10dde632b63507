package commands

import (
	"context"

	"wms/internal/core/domain/model/order"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// CreateOrderCommandHandler persists a new draft order after checking that
// every line refers to a known product.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines := cmd.Lines()
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Reference())
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, ok := products[line.ProductID]; !ok {
			return errs.NewObjectNotFoundError("product", line.ProductID)
		}
		if _, err = o.AddLine(line.ProductID, line.Quantity); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
