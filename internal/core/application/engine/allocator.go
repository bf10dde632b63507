package engine

import (
	"context"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// Consumed is the quantity taken from one lot.
type Consumed struct {
	Lot      *stock.Lot
	Quantity int
}

// CandidateLots returns the allocatable lots of productID in FEFO order. With
// forUpdate the lots stay locked until the transaction ends. Lots past their
// expiry date are never returned; locked ones are marked expired on the way.
func (e *Engine) CandidateLots(ctx context.Context, productID uuid.UUID, forUpdate bool) ([]*stock.Lot, error) {
	lots, err := e.repos.LotRepository().CandidateLots(ctx, productID, forUpdate)
	if err != nil {
		return nil, err
	}

	today := stock.Date(e.now())
	for _, lot := range lots {
		if !lot.Expire(today) || !forUpdate {
			continue
		}
		if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
			return nil, err
		}
		e.logger.DebugContext(ctx, "lot expired on allocation", "lot_id", lot.ID(), "product_id", productID)
	}

	return stock.Allocatable(lots), nil
}

type ConsumeInput struct {
	ProductID    uuid.UUID
	Quantity     int
	MovementType stock.MovementType
	Context      stock.MovementContext
	Actor        kernel.Actor
}

// Consume takes quantity of productID from its lots, earliest expiry first,
// journaling one movement per lot touched.
func (e *Engine) Consume(ctx context.Context, in ConsumeInput) ([]Consumed, error) {
	if in.Quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(in.Quantity)
	}

	lots, err := e.CandidateLots(ctx, in.ProductID, true)
	if err != nil {
		return nil, err
	}
	if available := stock.TotalAvailable(lots); available < in.Quantity {
		return nil, errs.NewInsufficientStockError(available)
	}

	remaining := in.Quantity
	consumed := make([]Consumed, 0, len(lots))
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := min(remaining, lot.Available())
		if take <= 0 {
			continue
		}
		if err = lot.Take(take); err != nil {
			return nil, err
		}
		if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
			return nil, err
		}
		from := lot.Location()
		if err = e.journal(ctx, in.MovementType, lot, take, &from, nil, in.Context, in.Actor); err != nil {
			return nil, err
		}
		consumed = append(consumed, Consumed{Lot: lot, Quantity: take})
		remaining -= take
	}
	return consumed, nil
}
