package engine_test

import (
	"context"
	"time"

	"wms/internal/adapters/out/memory"
	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/core/domain/model/stock"
	"wms/internal/core/domain/services"
	"wms/internal/core/ports"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// collidingReceipts rejects the first failures receipts as duplicates.
type collidingReceipts struct {
	ports.ReceiptRepository
	failures int
}

func (r *collidingReceipts) Add(ctx context.Context, receipt *stock.Receipt) error {
	if r.failures > 0 {
		r.failures--
		return errs.NewDuplicateKeyError("receipts_reference_key", nil)
	}
	return r.ReceiptRepository.Add(ctx, receipt)
}

type receiptCollisions struct {
	ports.UnitOfWork
	receipts *collidingReceipts
}

func (u receiptCollisions) ReceiptRepository() ports.ReceiptRepository { return u.receipts }

// strayPlanner plans a single bin holding a product the order does not have.
type strayPlanner struct{ productID uuid.UUID }

func (p strayPlanner) Plan([]services.ProductQuantity, *carton.Format) ([]services.Bin, []string, []string) {
	return []services.Bin{{Items: []services.BinItem{{ProductID: p.productID, Quantity: 1}}}}, nil, nil
}

func (s *EngineTestSuite) options() engine.Options {
	return engine.Options{Now: func() time.Time { return s.now }}
}

func (s *EngineTestSuite) addShipment(reference string) *shipment.Shipment {
	shp, err := shipment.NewShipment(uuid.New(), reference)
	s.Require().NoError(err)
	s.Require().NoError(s.run(func(_ *engine.Engine, uow ports.UnitOfWork) error {
		return uow.ShipmentRepository().Add(s.ctx, shp)
	}))
	return shp
}

func (s *EngineTestSuite) updateShipment(id uuid.UUID, change func(shp *shipment.Shipment) error) {
	s.Require().NoError(s.run(func(_ *engine.Engine, uow ports.UnitOfWork) error {
		shp, err := uow.ShipmentRepository().GetForUpdate(s.ctx, id)
		if err != nil {
			return err
		}
		if err = change(shp); err != nil {
			return err
		}
		return uow.ShipmentRepository().Update(s.ctx, shp)
	}))
}

func (s *EngineTestSuite) packInto(in engine.PrepareInput, quantity int) (*carton.Carton, error) {
	var c *carton.Carton
	in.Actor = s.actor
	err := s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		var err error
		c, err = e.Pack(s.ctx, engine.PackInput{ProductID: s.product.ID(), Quantity: quantity, Carton: in})
		return err
	})
	return c, err
}

func (s *EngineTestSuite) unpack(cartonID uuid.UUID) error {
	return s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Unpack(s.ctx, engine.UnpackInput{CartonID: cartonID, Actor: s.actor})
		return err
	})
}

func (s *EngineTestSuite) TestTransfer_EmptyLotIsJournaled() {
	lot := s.receive(s.product.ID(), 3, nil)
	s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Consume(s.ctx, engine.ConsumeInput{
			ProductID: s.product.ID(), Quantity: 3, MovementType: stock.MovementOut, Actor: s.actor,
		})
		return err
	}))

	s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Transfer(s.ctx, engine.TransferInput{LotID: lot.ID(), To: shelfB, Actor: s.actor})
		return err
	}))

	s.True(s.lot(lot.ID()).Location().IsEqual(shelfB))
	moves := s.movements(lot.ID())
	s.Require().Len(moves, 3)
	s.Equal(stock.MovementTransfer, moves[2].Type())
	s.Equal(0, moves[2].Quantity())
	s.True(moves[2].FromLocation().IsEqual(shelfA))
	s.True(moves[2].ToLocation().IsEqual(shelfB))
}

func (s *EngineTestSuite) TestConsume_SkipsLotsPastExpiry() {
	expired := s.receive(s.product.ID(), 5, day("2026-03-01"))
	fresh := s.receive(s.product.ID(), 5, day("2026-06-01"))

	var consumed []engine.Consumed
	s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		var err error
		consumed, err = e.Consume(s.ctx, engine.ConsumeInput{
			ProductID: s.product.ID(), Quantity: 2, MovementType: stock.MovementOut, Actor: s.actor,
		})
		return err
	}))

	s.Require().Len(consumed, 1)
	s.Equal(fresh.ID(), consumed[0].Lot.ID())
	stored := s.lot(expired.ID())
	s.Equal(5, stored.OnHand())
	s.Equal(stock.LotStatusExpired, stored.Status())
	s.Len(s.movements(expired.ID()), 1)
}

func (s *EngineTestSuite) TestReserve_IgnoresLotsPastExpiry() {
	s.receive(s.product.ID(), 5, day("2026-03-09"))
	s.receive(s.product.ID(), 3, nil)
	o := s.newOrder("ORD-EXP", map[uuid.UUID]int{s.product.ID(): 4})

	err := s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Reserve(s.ctx, o.ID())
		return err
	})
	s.ErrorIs(err, errs.ErrInsufficientStock)
}

func (s *EngineTestSuite) TestReceive_RetriesTakenReceiptReference() {
	var receipts *collidingReceipts
	wrap := func(uow ports.UnitOfWork) ports.Repositories {
		receipts = &collidingReceipts{ReceiptRepository: uow.ReceiptRepository(), failures: 1}
		return receiptCollisions{UnitOfWork: uow, receipts: receipts}
	}

	var ref string
	s.Require().NoError(inTxWith(s.ctx, s.factory, s.options(), wrap, func(e *engine.Engine, _ ports.UnitOfWork) error {
		res, err := e.Receive(s.ctx, engine.ReceiveInput{
			ProductID: s.product.ID(), Quantity: 1, Receipt: &engine.ReceiptRequest{}, Actor: s.actor,
		})
		if err != nil {
			return err
		}
		ref = res.Receipt.Reference()
		return nil
	}))
	s.Equal("26-02-XXX-00", ref)
	s.Zero(receipts.failures)
}

func (s *EngineTestSuite) TestReceive_ReceiptReferenceRetriesAreBounded() {
	wrap := func(uow ports.UnitOfWork) ports.Repositories {
		return receiptCollisions{
			UnitOfWork: uow,
			receipts:   &collidingReceipts{ReceiptRepository: uow.ReceiptRepository(), failures: 100},
		}
	}

	err := inTxWith(s.ctx, s.factory, s.options(), wrap, func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Receive(s.ctx, engine.ReceiveInput{
			ProductID: s.product.ID(), Quantity: 1, Receipt: &engine.ReceiptRequest{}, Actor: s.actor,
		})
		return err
	})
	s.ErrorIs(err, errs.ErrDuplicateKey)
}

func (s *EngineTestSuite) TestReceive_ManualReceiptReferenceIsNotRetried() {
	var receipts *collidingReceipts
	wrap := func(uow ports.UnitOfWork) ports.Repositories {
		receipts = &collidingReceipts{ReceiptRepository: uow.ReceiptRepository(), failures: 1}
		return receiptCollisions{UnitOfWork: uow, receipts: receipts}
	}

	err := inTxWith(s.ctx, s.factory, s.options(), wrap, func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Receive(s.ctx, engine.ReceiveInput{
			ProductID: s.product.ID(), Quantity: 1, Receipt: &engine.ReceiptRequest{Reference: "R-1"}, Actor: s.actor,
		})
		return err
	})
	s.ErrorIs(err, errs.ErrDuplicateKey)
}

func (s *EngineTestSuite) TestPrepare_WithoutCartonFormat() {
	s.factory = memory.NewUnitOfWorkFactory(memory.NewStore())
	s.product = s.addProduct("SOAP-1", "Liquid soap", "Hygiene Products", 500, 1000)
	lot := s.receive(s.product.ID(), 10, nil)
	o := s.newOrder("ORD-NOFMT", map[uuid.UUID]int{s.product.ID(): 4})
	s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Reserve(s.ctx, o.ID())
		return err
	}))

	err := s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Prepare(s.ctx, o.ID(), s.actor)
		return err
	})
	s.ErrorIs(err, errs.ErrMissingCartonFormat)

	s.Equal(10, s.lot(lot.ID()).OnHand())
	s.Equal(4, s.lot(lot.ID()).Reserved())
	s.Len(s.movements(lot.ID()), 1)
	s.Nil(s.order(o.ID()).ShipmentID())
}

func (s *EngineTestSuite) TestPrepare_PlannedProductNotOnOrder() {
	lot := s.receive(s.product.ID(), 10, nil)
	o := s.newOrder("ORD-STRAY", map[uuid.UUID]int{s.product.ID(): 4})
	s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Reserve(s.ctx, o.ID())
		return err
	}))

	opts := s.options()
	opts.Planner = strayPlanner{productID: uuid.New()}
	err := inTxWith(s.ctx, s.factory, opts, nil, func(e *engine.Engine, _ ports.UnitOfWork) error {
		_, err := e.Prepare(s.ctx, o.ID(), s.actor)
		return err
	})
	s.ErrorIs(err, errs.ErrProductNotOnOrder)

	s.Equal(10, s.lot(lot.ID()).OnHand())
	s.Equal(4, s.lot(lot.ID()).Reserved())
	s.Len(s.movements(lot.ID()), 1)
}

func (s *EngineTestSuite) TestPack_IntoLockedShipment() {
	lot := s.receive(s.product.ID(), 10, nil)
	planned := s.addShipment("260101")
	s.updateShipment(planned.ID(), func(shp *shipment.Shipment) error { return shp.Advance(shipment.StatusPlanned) })
	disputed := s.addShipment("260102")
	s.updateShipment(disputed.ID(), func(shp *shipment.Shipment) error {
		shp.SetDisputed(true)
		return nil
	})

	for _, id := range []uuid.UUID{planned.ID(), disputed.ID()} {
		_, err := s.packInto(engine.PrepareInput{ShipmentID: &id}, 2)
		s.ErrorIs(err, errs.ErrShipmentLocked)
	}

	s.Equal(10, s.lot(lot.ID()).OnHand())
	s.Len(s.movements(lot.ID()), 1)
}

func (s *EngineTestSuite) TestUnpack_FromLockedShipment() {
	tests := []struct {
		name   string
		lock   func(shp *shipment.Shipment) error
		suffix string
	}{
		{"planned", func(shp *shipment.Shipment) error { return shp.Advance(shipment.StatusPlanned) }, "1"},
		{"disputed", func(shp *shipment.Shipment) error { shp.SetDisputed(true); return nil }, "2"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			lot := s.receive(s.product.ID(), 10, nil)
			shp := s.addShipment("26020" + tt.suffix)
			id := shp.ID()
			c, err := s.packInto(engine.PrepareInput{ShipmentID: &id}, 3)
			s.Require().NoError(err)
			s.updateShipment(id, tt.lock)

			s.ErrorIs(s.unpack(c.ID()), errs.ErrShipmentLocked)

			s.Equal(7, s.lot(lot.ID()).OnHand())
			s.Len(s.movements(lot.ID()), 2)
			stored, err := s.factory.Create().CartonRepository().Get(s.ctx, c.ID())
			s.Require().NoError(err)
			s.Equal(3, stored.TotalQuantity())
			s.Equal(&id, stored.ShipmentID())
		})
	}
}

func (s *EngineTestSuite) TestPack_CartonOfAnotherShipment() {
	lot := s.receive(s.product.ID(), 10, nil)
	first := s.addShipment("260301").ID()
	second := s.addShipment("260302").ID()
	c, err := s.packInto(engine.PrepareInput{ShipmentID: &first}, 2)
	s.Require().NoError(err)
	cartonID := c.ID()

	_, err = s.packInto(engine.PrepareInput{CartonID: &cartonID, ShipmentID: &second}, 2)
	s.ErrorIs(err, errs.ErrCartonShipmentConflict)

	s.Equal(8, s.lot(lot.ID()).OnHand())
	s.Len(s.movements(lot.ID()), 2)
}

func (s *EngineTestSuite) TestShippedCartonCannotChange() {
	lot := s.receive(s.product.ID(), 10, nil)
	shp := s.addShipment("260401").ID()
	c, err := s.packInto(engine.PrepareInput{ShipmentID: &shp}, 2)
	s.Require().NoError(err)
	for _, status := range []carton.Status{carton.StatusLabeled, carton.StatusShipped} {
		s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
			_, err := e.SetCartonStatus(s.ctx, engine.SetCartonStatusInput{CartonID: c.ID(), Status: status, Actor: s.actor})
			return err
		}))
	}
	cartonID := c.ID()

	_, err = s.packInto(engine.PrepareInput{CartonID: &cartonID}, 1)
	s.ErrorIs(err, errs.ErrCartonAlreadyShipped)
	s.ErrorIs(s.unpack(cartonID), errs.ErrCartonAlreadyShipped)

	s.Equal(8, s.lot(lot.ID()).OnHand())
	s.Len(s.movements(lot.ID()), 2)
}
