package engine

import (
	"context"
	"errors"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/core/domain/model/stock"
	"wms/internal/core/domain/services"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// Reserve soft-commits stock to every line of the order that is short of
// its remaining quantity, drawing on lots in FEFO order. Either every line
// is covered or an InsufficientStock error names the first product that is
// not.
func (e *Engine) Reserve(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	o, err := e.repos.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err = o.EnsureReservable(); err != nil {
		return nil, err
	}

	for _, line := range o.Lines() {
		needed := line.Shortfall()
		if needed == 0 {
			continue
		}
		if err = e.reserveLine(ctx, line, needed); err != nil {
			return nil, err
		}
	}

	if err = o.MarkReserved(); err != nil {
		return nil, err
	}
	if err = e.repos.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (e *Engine) reserveLine(ctx context.Context, line *order.Line, needed int) error {
	lots, err := e.CandidateLots(ctx, line.ProductID(), true)
	if err != nil {
		return err
	}
	if available := stock.TotalAvailable(lots); available < needed {
		product, err := e.repos.ProductRepository().Get(ctx, line.ProductID())
		if err != nil {
			return err
		}
		return errs.NewInsufficientStockForProductError(product.SKU(), needed, available)
	}

	remaining := needed
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := min(remaining, lot.Available())
		if take <= 0 {
			continue
		}
		if err = lot.Reserve(take); err != nil {
			return err
		}
		if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
			return err
		}
		if err = line.Reserve(lot.ID(), take); err != nil {
			return err
		}
		remaining -= take
	}
	e.recorder.RecordReservation("reserve", needed)
	return nil
}

type ReleaseInput struct {
	LineID   uuid.UUID
	Quantity int
}

// Release gives back part of a line's reservation, earliest expiring lots
// first. A failed release changes nothing.
func (e *Engine) Release(ctx context.Context, in ReleaseInput) (*order.Order, error) {
	if in.Quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(in.Quantity)
	}

	o, err := e.repos.OrderRepository().GetByLineForUpdate(ctx, in.LineID)
	if err != nil {
		return nil, err
	}
	line, err := o.Line(in.LineID)
	if err != nil {
		return nil, err
	}
	if in.Quantity > line.Reserved() {
		return nil, errs.NewInsufficientReservationError(in.Quantity, line.Reserved())
	}

	if err = e.releaseLine(ctx, line, in.Quantity); err != nil {
		return nil, err
	}
	if err = e.repos.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (e *Engine) releaseLine(ctx context.Context, line *order.Line, quantity int) error {
	lots, lotOrder, err := e.lockReservedLots(ctx, line)
	if err != nil {
		return err
	}
	released, err := line.Release(quantity, lotOrder)
	if err != nil {
		return err
	}
	return e.giveBack(ctx, lots, released, "release")
}

func (e *Engine) giveBack(ctx context.Context, lots map[uuid.UUID]*stock.Lot, released []order.Allocation, operation string) error {
	total := 0
	for _, a := range released {
		lot := lots[a.LotID]
		if lot.Reserved() < a.Quantity {
			e.logger.WarnContext(ctx, "lot reserved below reservation rows, clamping at zero",
				"lot_id", lot.ID(), "reserved", lot.Reserved(), "released", a.Quantity)
		}
		lot.ReleaseReserved(a.Quantity)
		if err := e.repos.LotRepository().Update(ctx, lot); err != nil {
			return err
		}
		total += a.Quantity
	}
	e.recorder.RecordReservation(operation, total)
	return nil
}

type ConsumeReservedInput struct {
	LineID       uuid.UUID
	Quantity     int
	MovementType stock.MovementType
	Context      stock.MovementContext
	Actor        kernel.Actor
}

// ConsumeReserved turns part of a line's reservation into consumed stock:
// on hand and reserved drop on each lot, one movement per lot, and the line
// counts the quantity as prepared.
func (e *Engine) ConsumeReserved(ctx context.Context, in ConsumeReservedInput) ([]Consumed, error) {
	if in.Quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(in.Quantity)
	}

	o, err := e.repos.OrderRepository().GetByLineForUpdate(ctx, in.LineID)
	if err != nil {
		return nil, err
	}
	line, err := o.Line(in.LineID)
	if err != nil {
		return nil, err
	}

	consumed, err := e.consumeReserved(ctx, line, in.Quantity, in.MovementType, in.Context, in.Actor)
	if err != nil {
		return nil, err
	}
	if err = e.repos.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return consumed, nil
}

func (e *Engine) consumeReserved(
	ctx context.Context,
	line *order.Line,
	quantity int,
	movementType stock.MovementType,
	mc stock.MovementContext,
	actor kernel.Actor,
) ([]Consumed, error) {
	lots, lotOrder, err := e.lockReservedLots(ctx, line)
	if err != nil {
		return nil, err
	}
	taken, err := line.Consume(quantity, lotOrder)
	if err != nil {
		return nil, err
	}

	lineID := line.ID()
	mc.OrderLineID = &lineID
	consumed := make([]Consumed, 0, len(taken))
	for _, a := range taken {
		lot := lots[a.LotID]
		if lot.Reserved() < a.Quantity {
			e.logger.WarnContext(ctx, "lot reserved below reservation rows, clamping at zero",
				"lot_id", lot.ID(), "reserved", lot.Reserved(), "consumed", a.Quantity)
		}
		if err = lot.ConsumeReserved(a.Quantity); err != nil {
			return nil, err
		}
		if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
			return nil, err
		}
		from := lot.Location()
		if err = e.journal(ctx, movementType, lot, a.Quantity, &from, nil, mc, actor); err != nil {
			return nil, err
		}
		consumed = append(consumed, Consumed{Lot: lot, Quantity: a.Quantity})
	}
	e.recorder.RecordReservation("consume", quantity)
	return consumed, nil
}

// lockReservedLots locks the lots a line holds reservations on and returns
// them with their FEFO order.
func (e *Engine) lockReservedLots(ctx context.Context, line *order.Line) (map[uuid.UUID]*stock.Lot, []uuid.UUID, error) {
	ids := line.ReservedLotIDs()
	if len(ids) == 0 {
		return map[uuid.UUID]*stock.Lot{}, nil, nil
	}
	locked, err := e.repos.LotRepository().ListForUpdate(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	stock.SortFEFO(locked)

	lots := make(map[uuid.UUID]*stock.Lot, len(locked))
	lotOrder := make([]uuid.UUID, 0, len(locked))
	for _, lot := range locked {
		lots[lot.ID()] = lot
		lotOrder = append(lotOrder, lot.ID())
	}
	for _, id := range ids {
		if _, ok := lots[id]; !ok {
			return nil, nil, errs.NewObjectNotFoundError("lot", id)
		}
	}
	return lots, lotOrder, nil
}

// AssignReadyCartons links pre-packed cartons to the order's shipment and
// returns how many were assigned.
func (e *Engine) AssignReadyCartons(ctx context.Context, orderID uuid.UUID) (int, error) {
	o, err := e.repos.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return 0, err
	}
	shp, err := e.ensureOrderShipment(ctx, o)
	if err != nil {
		return 0, err
	}
	assigned, err := e.assignReadyCartons(ctx, o, shp)
	if err != nil {
		return 0, err
	}
	if err = e.repos.OrderRepository().Update(ctx, o); err != nil {
		return 0, err
	}
	return assigned, nil
}

// assignReadyCartons walks packed cartons without a shipment by code. A
// carton holding a single product of the order, no more than the line still
// needs, joins the shipment: the line counts it as prepared and gives back
// the matching part of its reservation.
func (e *Engine) assignReadyCartons(ctx context.Context, o *order.Order, shp *shipment.Shipment) (int, error) {
	cartons, err := e.repos.CartonRepository().ListReadyUnassigned(ctx)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, c := range cartons {
		products := c.ProductIDs()
		if len(products) != 1 {
			continue
		}
		line := o.LineForProduct(products[0])
		if line == nil {
			continue
		}
		quantity := c.TotalQuantity()
		if quantity <= 0 || quantity > line.Remaining() {
			continue
		}

		if err = c.AttachShipment(shp.ID()); err != nil {
			return assigned, err
		}
		if err = e.repos.CartonRepository().Update(ctx, c); err != nil {
			return assigned, err
		}
		if release := min(quantity, line.Reserved()); release > 0 {
			if err = e.releaseLine(ctx, line, release); err != nil {
				return assigned, err
			}
		}
		if err = line.AddPrepared(quantity); err != nil {
			return assigned, err
		}
		assigned++
	}

	if assigned > 0 {
		if err = e.syncShipment(ctx, shp); err != nil {
			return assigned, err
		}
		e.logger.InfoContext(ctx, "ready cartons assigned", "order", o.Reference(), "cartons", assigned)
	}
	return assigned, nil
}

// Prepare fulfils a reserved order: ready cartons are assigned first, then
// the remaining quantities are planned into cartons of the default format
// and packed from the reservations. The order ends ready when nothing is
// left to prepare and preparing otherwise. It returns the number of ready
// cartons assigned.
func (e *Engine) Prepare(ctx context.Context, orderID uuid.UUID, actor kernel.Actor) (int, error) {
	o, err := e.repos.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if err = o.EnsurePreparable(); err != nil {
		return 0, err
	}

	shp, err := e.ensureOrderShipment(ctx, o)
	if err != nil {
		return 0, err
	}
	assigned, err := e.assignReadyCartons(ctx, o, shp)
	if err != nil {
		return 0, err
	}

	if err = e.packRemaining(ctx, o, shp, actor); err != nil {
		return 0, err
	}

	if err = o.FinishPreparation(); err != nil {
		return 0, err
	}
	if err = e.repos.OrderRepository().Update(ctx, o); err != nil {
		return 0, err
	}
	return assigned, nil
}

func (e *Engine) packRemaining(ctx context.Context, o *order.Order, shp *shipment.Shipment, actor kernel.Actor) error {
	var open []*order.Line
	for _, line := range o.Lines() {
		if line.Remaining() > 0 {
			open = append(open, line)
		}
	}
	if len(open) == 0 {
		return nil
	}

	format, err := e.repos.CartonFormatRepository().Default(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewMissingCartonFormatError()
	}
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(open))
	for _, line := range open {
		ids = append(ids, line.ProductID())
	}
	products, err := e.repos.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return err
	}

	requested := make([]services.ProductQuantity, 0, len(open))
	byProduct := make(map[uuid.UUID]*order.Line, len(open))
	for _, line := range open {
		product, ok := products[line.ProductID()]
		if !ok {
			return errs.NewObjectNotFoundError("product", line.ProductID())
		}
		requested = append(requested, services.ProductQuantity{Product: product, Quantity: line.Remaining()})
		byProduct[line.ProductID()] = line
	}

	bins, problems, warnings := e.planner.Plan(requested, format)
	for _, w := range warnings {
		e.logger.WarnContext(ctx, "packing plan warning", "order", o.Reference(), "warning", w)
	}
	if len(problems) > 0 {
		return errs.NewPackingError(problems[0])
	}

	shipID := shp.ID()
	for _, bin := range bins {
		var cartonID *uuid.UUID
		for _, item := range bin.Items {
			line, ok := byProduct[item.ProductID]
			if !ok {
				return errs.NewProductNotOnOrderError(item.ProductID.String())
			}
			c, err := e.packFromReservation(ctx, line, item.Quantity, PrepareInput{
				CartonID:   cartonID,
				ShipmentID: &shipID,
				Format:     format,
				Actor:      actor,
			})
			if err != nil {
				return err
			}
			id := c.ID()
			cartonID = &id
		}
	}
	return nil
}

// Cancel releases every reservation of the order and cancels it.
func (e *Engine) Cancel(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	o, err := e.repos.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Status().CanMoveTo(order.StatusCancelled) {
		return nil, errs.NewOrderNotEditableError(o.Reference(), o.Status().String())
	}

	for _, line := range o.Lines() {
		if line.Reserved() == 0 && len(line.Reservations()) == 0 {
			continue
		}
		lots, lotOrder, err := e.lockReservedLots(ctx, line)
		if err != nil {
			return nil, err
		}
		if err = e.giveBack(ctx, lots, line.ReleaseAll(lotOrder), "cancel"); err != nil {
			return nil, err
		}
	}

	if err = o.Cancel(); err != nil {
		return nil, err
	}
	if err = e.repos.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ensureOrderShipment returns the order's locked shipment, creating one with
// a fresh reference when the order has none yet.
func (e *Engine) ensureOrderShipment(ctx context.Context, o *order.Order) (*shipment.Shipment, error) {
	if id := o.ShipmentID(); id != nil {
		return e.repos.ShipmentRepository().GetForUpdate(ctx, *id)
	}

	ref, err := e.NextShipmentReference(ctx)
	if err != nil {
		return nil, err
	}
	shp, err := shipment.NewShipment(uuid.New(), ref)
	if err != nil {
		return nil, err
	}
	if err = e.repos.ShipmentRepository().Add(ctx, shp); err != nil {
		return nil, err
	}
	if err = o.AttachShipment(shp.ID()); err != nil {
		return nil, err
	}
	return shp, nil
}
