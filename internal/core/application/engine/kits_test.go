package engine_test

import (
	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/stock"
	"wms/internal/core/ports"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

func (s *EngineTestSuite) addKit(sku string, components ...stock.KitComponent) *stock.Product {
	p, err := stock.NewProduct(uuid.New(), sku, sku+" kit", "Hygiene Products")
	s.Require().NoError(err)
	s.Require().NoError(p.SetKitComponents(components))
	s.Require().NoError(s.run(func(_ *engine.Engine, uow ports.UnitOfWork) error {
		return uow.ProductRepository().Add(s.ctx, p)
	}))
	return p
}

func (s *EngineTestSuite) pack(productID uuid.UUID, quantity int) (*carton.Carton, error) {
	var c *carton.Carton
	err := s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		var err error
		c, err = e.Pack(s.ctx, engine.PackInput{
			ProductID: productID,
			Quantity:  quantity,
			Carton:    engine.PrepareInput{Actor: s.actor},
		})
		return err
	})
	return c, err
}

func (s *EngineTestSuite) TestExpandKit_MultipliesNestedKits() {
	towel := s.addProduct("TOWEL-1", "Towel", "Hygiene Products", 200, 800)
	basic := s.addKit("KIT-BASIC",
		stock.KitComponent{ComponentID: s.product.ID(), Quantity: 2},
		stock.KitComponent{ComponentID: towel.ID(), Quantity: 1})
	family := s.addKit("KIT-FAMILY",
		stock.KitComponent{ComponentID: basic.ID(), Quantity: 2},
		stock.KitComponent{ComponentID: towel.ID(), Quantity: 1})

	var components []engine.ComponentQuantity
	s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		var err error
		components, err = e.ExpandKit(s.ctx, family, 3)
		return err
	}))

	s.Require().Len(components, 2)
	s.Equal(s.product.ID(), components[0].Product.ID())
	s.Equal(12, components[0].Quantity)
	s.Equal(towel.ID(), components[1].Product.ID())
	s.Equal(9, components[1].Quantity)
}

func (s *EngineTestSuite) TestExpandKit_PlainProductIsItsOwnComponent() {
	var components []engine.ComponentQuantity
	s.Require().NoError(s.run(func(e *engine.Engine, _ ports.UnitOfWork) error {
		var err error
		components, err = e.ExpandKit(s.ctx, s.product, 4)
		return err
	}))

	s.Require().Len(components, 1)
	s.Equal(s.product.ID(), components[0].Product.ID())
	s.Equal(4, components[0].Quantity)
}

func (s *EngineTestSuite) TestPack_KitConsumesComponents() {
	towel := s.addProduct("TOWEL-1", "Towel", "Hygiene Products", 200, 800)
	kit := s.addKit("KIT-1",
		stock.KitComponent{ComponentID: s.product.ID(), Quantity: 2},
		stock.KitComponent{ComponentID: towel.ID(), Quantity: 1})
	soapLot := s.receive(s.product.ID(), 10, nil)
	towelLot := s.receive(towel.ID(), 5, nil)

	c, err := s.pack(kit.ID(), 3)
	s.Require().NoError(err)

	s.Equal(9, c.TotalQuantity())
	s.Require().Len(c.Items(), 2)
	s.Equal(4, s.lot(soapLot.ID()).OnHand())
	s.Equal(2, s.lot(towelLot.ID()).OnHand())

	moves := s.movements(towelLot.ID())
	s.Require().Len(moves, 2)
	s.Equal(stock.MovementPrecondition, moves[1].Type())
	s.Equal(3, moves[1].Quantity())
	s.Equal(c.ID(), *moves[1].Context().CartonID)
}

func (s *EngineTestSuite) TestPack_KitShortOfOneComponentTakesNothing() {
	towel := s.addProduct("TOWEL-1", "Towel", "Hygiene Products", 200, 800)
	kit := s.addKit("KIT-1",
		stock.KitComponent{ComponentID: s.product.ID(), Quantity: 2},
		stock.KitComponent{ComponentID: towel.ID(), Quantity: 1})
	soapLot := s.receive(s.product.ID(), 10, nil)
	towelLot := s.receive(towel.ID(), 2, nil)

	_, err := s.pack(kit.ID(), 3)
	s.ErrorIs(err, errs.ErrInsufficientStock)

	s.Equal(10, s.lot(soapLot.ID()).OnHand())
	s.Equal(2, s.lot(towelLot.ID()).OnHand())
	s.Len(s.movements(soapLot.ID()), 1)
}

func (s *EngineTestSuite) TestPack_KitCycleIsRejected() {
	inner := s.addKit("KIT-A", stock.KitComponent{ComponentID: s.product.ID(), Quantity: 1})
	outer := s.addKit("KIT-B", stock.KitComponent{ComponentID: inner.ID(), Quantity: 1})
	s.Require().NoError(inner.SetKitComponents([]stock.KitComponent{{ComponentID: outer.ID(), Quantity: 1}}))
	s.Require().NoError(s.run(func(_ *engine.Engine, uow ports.UnitOfWork) error {
		return uow.ProductRepository().Update(s.ctx, inner)
	}))
	lot := s.receive(s.product.ID(), 10, nil)

	_, err := s.pack(outer.ID(), 1)
	s.Require().ErrorIs(err, errs.ErrPackingError)
	s.Contains(err.Error(), "KIT-B -> KIT-A -> KIT-B")

	s.Equal(10, s.lot(lot.ID()).OnHand())
	s.Len(s.movements(lot.ID()), 1)
}

func (s *EngineTestSuite) TestPack_UnknownProduct() {
	_, err := s.pack(uuid.New(), 1)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}
