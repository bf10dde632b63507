package engine

import (
	"context"
	"errors"

	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/core/domain/model/stock"
	"wms/internal/core/domain/services"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// PrepareInput selects or creates the carton to pack into. With neither
// CartonID nor Code a carton with a generated code is created. A Code that
// is not known yet creates a carton with that manual code.
type PrepareInput struct {
	CartonID   *uuid.UUID
	Code       string
	ShipmentID *uuid.UUID
	Location   *kernel.Location
	// Format supplies missing dimensions; nil uses the default format.
	Format *carton.Format
	Actor  kernel.Actor
}

// PrepareCarton returns the locked carton ready to receive items, linked to
// the requested shipment when there is one.
func (e *Engine) PrepareCarton(ctx context.Context, in PrepareInput) (*carton.Carton, *shipment.Shipment, error) {
	var shp *shipment.Shipment
	if in.ShipmentID != nil {
		var err error
		if shp, err = e.repos.ShipmentRepository().GetForUpdate(ctx, *in.ShipmentID); err != nil {
			return nil, nil, err
		}
	}

	c, err := e.resolveCarton(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	if err = c.EnsureModifiable(); err != nil {
		return nil, nil, err
	}
	if shp != nil {
		if err = shp.EnsureEditable(); err != nil {
			return nil, nil, err
		}
		if err = c.AttachShipment(shp.ID()); err != nil {
			return nil, nil, err
		}
	}
	if in.Location != nil {
		if err = c.SetLocation(*in.Location); err != nil {
			return nil, nil, err
		}
	}

	if c.Dimensions() == nil {
		format := in.Format
		if format == nil {
			format, err = e.repos.CartonFormatRepository().Default(ctx)
			if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
				return nil, nil, err
			}
		}
		if format != nil {
			c.FillDimensions(format.Dimensions())
		}
	}

	if err = e.repos.CartonRepository().Update(ctx, c); err != nil {
		return nil, nil, err
	}
	return c, shp, nil
}

func (e *Engine) resolveCarton(ctx context.Context, in PrepareInput) (*carton.Carton, error) {
	cartons := e.repos.CartonRepository()
	switch {
	case in.CartonID != nil:
		return cartons.GetForUpdate(ctx, *in.CartonID)
	case in.Code != "":
		return e.manualCarton(ctx, in.Code, in.Actor)
	default:
		return e.newGeneratedCarton(ctx, in.Actor)
	}
}

func (e *Engine) manualCarton(ctx context.Context, code string, actor kernel.Actor) (*carton.Carton, error) {
	cartons := e.repos.CartonRepository()

	existing, err := cartons.GetByCode(ctx, code)
	if err == nil {
		return cartons.GetForUpdate(ctx, existing.ID())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	c, err := carton.NewCarton(uuid.New(), code, carton.CodeManual, actor, e.now())
	if err != nil {
		return nil, err
	}
	err = cartons.Add(ctx, c)
	if errors.Is(err, errs.ErrDuplicateKey) {
		existing, err = cartons.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return cartons.GetForUpdate(ctx, existing.ID())
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// newGeneratedCarton inserts a carton coded XX-<today>-<next>, moving to the
// next sequence whenever a concurrent transaction took the code first.
func (e *Engine) newGeneratedCarton(ctx context.Context, actor kernel.Actor) (*carton.Carton, error) {
	now := e.now()
	date := carton.CodeDate(now)

	var lastErr error
	for attempt := 0; attempt < e.retries; attempt++ {
		codes, err := e.repos.CartonRepository().CodesForDate(ctx, now)
		if err != nil {
			return nil, err
		}
		code := carton.Code{TypeCode: carton.UnknownTypeCode, Date: date, Sequence: carton.NextSequence(codes, date)}

		c, err := carton.NewCarton(uuid.New(), code.String(), carton.CodeGenerated, actor, now)
		if err != nil {
			return nil, err
		}
		err = e.repos.CartonRepository().Add(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, errs.ErrDuplicateKey) {
			return nil, err
		}
		lastErr = err
		e.recorder.RecordCodeCollision("carton")
		e.logger.DebugContext(ctx, "carton code taken, retrying", "code", code.String(), "attempt", attempt+1)
	}
	return nil, lastErr
}

// ensureCartonCode re-derives the type code of a generated carton from its
// contents. The sequence is kept unless the carton was created on another
// date or the new code is taken.
func (e *Engine) ensureCartonCode(ctx context.Context, c *carton.Carton) error {
	if c.Origin() == carton.CodeManual {
		return nil
	}
	current, ok := carton.ParseCode(c.Code())
	if !ok {
		return nil
	}

	contents, err := e.cartonContents(ctx, c)
	if err != nil {
		return err
	}
	next := carton.Code{
		TypeCode: services.DominantTypeCode(contents),
		Date:     carton.CodeDate(c.CreatedAt()),
		Sequence: current.Sequence,
	}
	if current.Date != next.Date {
		if next.Sequence, err = e.nextCodeSequence(ctx, c); err != nil {
			return err
		}
	}

	for attempt := 0; attempt < e.retries; attempt++ {
		if !c.Recode(next.String()) {
			return nil
		}
		err = e.repos.CartonRepository().Update(ctx, c)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrDuplicateKey) {
			return err
		}
		e.recorder.RecordCodeCollision("carton")
		if next.Sequence, err = e.nextCodeSequence(ctx, c); err != nil {
			return err
		}
	}
	return errs.NewDuplicateKeyError("carton code", nil)
}

func (e *Engine) nextCodeSequence(ctx context.Context, c *carton.Carton) (int, error) {
	codes, err := e.repos.CartonRepository().CodesForDate(ctx, c.CreatedAt())
	if err != nil {
		return 0, err
	}
	return carton.NextSequence(codes, carton.CodeDate(c.CreatedAt())), nil
}

func (e *Engine) cartonContents(ctx context.Context, c *carton.Carton) ([]services.ProductQuantity, error) {
	products, err := e.repos.ProductRepository().GetMany(ctx, c.ProductIDs())
	if err != nil {
		return nil, err
	}
	items := c.Items()
	contents := make([]services.ProductQuantity, 0, len(items))
	for _, item := range items {
		contents = append(contents, services.ProductQuantity{Product: products[item.ProductID()], Quantity: item.Quantity()})
	}
	return contents, nil
}

type PackInput struct {
	ProductID uuid.UUID
	Quantity  int
	Carton    PrepareInput
}

// Pack moves quantity of a product from its lots (FEFO) into a carton. A kit
// is packed as its components, each drawn from its own lots. The stock
// leaves with an OUT movement when the carton ships with a shipment, with a
// PRECONDITION movement otherwise.
func (e *Engine) Pack(ctx context.Context, in PackInput) (*carton.Carton, error) {
	if in.Quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(in.Quantity)
	}

	product, err := e.repos.ProductRepository().Get(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	components, err := e.ExpandKit(ctx, product, in.Quantity)
	if err != nil {
		return nil, err
	}

	c, shp, err := e.PrepareCarton(ctx, in.Carton)
	if err != nil {
		return nil, err
	}

	cartonID := c.ID()
	var consumed []Consumed
	for _, component := range components {
		taken, err := e.Consume(ctx, ConsumeInput{
			ProductID:    component.Product.ID(),
			Quantity:     component.Quantity,
			MovementType: packMovement(shp),
			Context:      stock.MovementContext{CartonID: &cartonID, ShipmentID: shipmentID(shp)},
			Actor:        in.Carton.Actor,
		})
		if err != nil {
			return nil, err
		}
		consumed = append(consumed, taken...)
	}

	if err = e.fill(ctx, c, shp, consumed, in.Carton.Actor); err != nil {
		return nil, err
	}
	return c, nil
}

type PackFromReservationInput struct {
	LineID   uuid.UUID
	Quantity int
	Carton   PrepareInput
}

// PackFromReservation packs quantity of an order line into a carton, drawing
// on the lots the line has reserved.
func (e *Engine) PackFromReservation(ctx context.Context, in PackFromReservationInput) (*carton.Carton, error) {
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

	c, err := e.packFromReservation(ctx, line, in.Quantity, in.Carton)
	if err != nil {
		return nil, err
	}
	if err = e.repos.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return c, nil
}

func (e *Engine) packFromReservation(ctx context.Context, line *order.Line, quantity int, in PrepareInput) (*carton.Carton, error) {
	c, shp, err := e.PrepareCarton(ctx, in)
	if err != nil {
		return nil, err
	}

	cartonID := c.ID()
	consumed, err := e.consumeReserved(ctx, line, quantity, packMovement(shp),
		stock.MovementContext{CartonID: &cartonID, ShipmentID: shipmentID(shp)}, in.Actor)
	if err != nil {
		return nil, err
	}

	if err = e.fill(ctx, c, shp, consumed, in.Actor); err != nil {
		return nil, err
	}
	return c, nil
}

// fill records consumed stock as carton items, advances the carton status,
// re-derives a generated code and resynchronises the shipment.
func (e *Engine) fill(ctx context.Context, c *carton.Carton, shp *shipment.Shipment, consumed []Consumed, actor kernel.Actor) error {
	for _, entry := range consumed {
		if err := c.AddItem(entry.Lot.ID(), entry.Lot.ProductID(), entry.Quantity); err != nil {
			return err
		}
	}

	switch {
	case shp != nil:
		if _, err := c.SetStatus(carton.StatusAssigned, "packed for shipment "+shp.Reference(), actor, e.now()); err != nil {
			return err
		}
	case c.Status() == carton.StatusDraft:
		if _, err := c.SetStatus(carton.StatusPicking, "packing started", actor, e.now()); err != nil {
			return err
		}
	}

	if err := e.repos.CartonRepository().Update(ctx, c); err != nil {
		return err
	}
	if err := e.ensureCartonCode(ctx, c); err != nil {
		return err
	}
	return e.syncShipment(ctx, shp)
}

type UnpackInput struct {
	CartonID uuid.UUID
	Actor    kernel.Actor
}

// Unpack puts every item of the carton back on its lot with an UNPACK
// movement, empties the carton, detaches it from its shipment and returns it
// to draft.
func (e *Engine) Unpack(ctx context.Context, in UnpackInput) (*carton.Carton, error) {
	c, err := e.repos.CartonRepository().GetForUpdate(ctx, in.CartonID)
	if err != nil {
		return nil, err
	}

	var shp *shipment.Shipment
	if id := c.ShipmentID(); id != nil {
		if shp, err = e.repos.ShipmentRepository().GetForUpdate(ctx, *id); err != nil {
			return nil, err
		}
		if err = shp.EnsureEditable(); err != nil {
			return nil, err
		}
	}

	items, err := c.Unpack()
	if err != nil {
		return nil, err
	}

	lotIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		lotIDs = append(lotIDs, item.LotID())
	}
	lots, err := e.lockLots(ctx, lotIDs)
	if err != nil {
		return nil, err
	}

	cartonID := c.ID()
	mc := stock.MovementContext{CartonID: &cartonID, ShipmentID: shipmentID(shp)}
	for _, item := range items {
		lot := lots[item.LotID()]
		if err = lot.Restock(item.Quantity()); err != nil {
			return nil, err
		}
		if err = e.repos.LotRepository().Update(ctx, lot); err != nil {
			return nil, err
		}
		to := lot.Location()
		if err = e.journal(ctx, stock.MovementUnpack, lot, item.Quantity(), nil, &to, mc, in.Actor); err != nil {
			return nil, err
		}
	}

	if _, err = c.SetStatus(carton.StatusDraft, "unpacked", in.Actor, e.now()); err != nil {
		return nil, err
	}
	if err = e.repos.CartonRepository().Update(ctx, c); err != nil {
		return nil, err
	}
	if err = e.syncShipment(ctx, shp); err != nil {
		return nil, err
	}
	return c, nil
}

type SetCartonStatusInput struct {
	CartonID uuid.UUID
	Status   carton.Status
	Reason   string
	Actor    kernel.Actor
}

// SetCartonStatus moves a carton along its transition table and records the
// change.
func (e *Engine) SetCartonStatus(ctx context.Context, in SetCartonStatusInput) (*carton.Carton, error) {
	c, err := e.repos.CartonRepository().GetForUpdate(ctx, in.CartonID)
	if err != nil {
		return nil, err
	}

	var shp *shipment.Shipment
	if id := c.ShipmentID(); id != nil {
		if shp, err = e.repos.ShipmentRepository().GetForUpdate(ctx, *id); err != nil {
			return nil, err
		}
	}

	changed, err := c.SetStatus(in.Status, in.Reason, in.Actor, e.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return c, nil
	}
	if err = e.repos.CartonRepository().Update(ctx, c); err != nil {
		return nil, err
	}
	if err = e.syncShipment(ctx, shp); err != nil {
		return nil, err
	}
	return c, nil
}

// syncShipment recomputes the readiness of shp from its cartons.
func (e *Engine) syncShipment(ctx context.Context, shp *shipment.Shipment) error {
	if shp == nil {
		return nil
	}
	statuses, err := e.repos.CartonRepository().StatusesByShipment(ctx, shp.ID())
	if err != nil {
		return err
	}
	ready := 0
	for _, s := range statuses {
		if s.IsReady() {
			ready++
		}
	}
	if !shp.SyncReadiness(len(statuses), ready, e.now()) {
		return nil
	}
	return e.repos.ShipmentRepository().Update(ctx, shp)
}

// lockLots locks the lots in FEFO order and returns them by id.
func (e *Engine) lockLots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*stock.Lot, error) {
	lots, err := e.repos.LotRepository().ListForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*stock.Lot, len(lots))
	for _, lot := range lots {
		byID[lot.ID()] = lot
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, errs.NewObjectNotFoundError("lot", id)
		}
	}
	return byID, nil
}

func packMovement(shp *shipment.Shipment) stock.MovementType {
	if shp != nil {
		return stock.MovementOut
	}
	return stock.MovementPrecondition
}

func shipmentID(shp *shipment.Shipment) *uuid.UUID {
	if shp == nil {
		return nil
	}
	id := shp.ID()
	return &id
}
