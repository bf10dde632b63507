package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "wms/internal/adapters/out/postgres"
	"wms/internal/adapters/out/postgres/pgtest"
	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var shelf = kernel.MustParseLocation("WH1-A-01-01")

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// UnitOfWorkIntegrationTestSuite runs the unit of work and the engine against
// a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory *postgres_adapter.GormUnitOfWorkFactory
	ctx     context.Context
	now     time.Time
	actor   kernel.Actor
	product *stock.Product
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	actor, err := kernel.NewActor(uuid.New(), "picker")
	suite.Require().NoError(err)
	suite.actor = actor

	suite.product = suite.addProduct("SOAP-1", "Hygiene Products")

	dims, err := kernel.NewDimensions(decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(30))
	suite.Require().NoError(err)
	format, err := carton.NewFormat(uuid.New(), "standard", dims, 20000, true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CartonFormatRepository().Add(suite.ctx, format))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) addProduct(sku, category string) *stock.Product {
	p, err := stock.NewProduct(uuid.New(), sku, sku+" product", category)
	suite.Require().NoError(err)
	suite.Require().NoError(p.SetWeightG(500))
	suite.Require().NoError(p.SetVolumeCm3(decimal.NewFromInt(1000)))
	suite.Require().NoError(p.SetDefaultLocation(&shelf))
	suite.Require().NoError(suite.factory.Create().ProductRepository().Add(suite.ctx, p))
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) run(budget int, fn func(e *engine.Engine) error) error {
	uow := suite.factory.Create()
	if err := uow.Begin(suite.ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(suite.ctx)
	}()

	e := engine.New(uow, engine.Options{
		Now:             func() time.Time { return suite.now },
		CodeRetryBudget: budget,
	})
	if err := fn(e); err != nil {
		return err
	}
	return uow.Commit(suite.ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) receive(quantity int, expiresOn *time.Time) *stock.Lot {
	var lot *stock.Lot
	suite.Require().NoError(suite.run(0, func(e *engine.Engine) error {
		res, err := e.Receive(suite.ctx, engine.ReceiveInput{
			ProductID:  suite.product.ID(),
			Quantity:   quantity,
			Attributes: stock.LotAttributes{ExpiresOn: expiresOn},
			Actor:      suite.actor,
		})
		lot = res.Lot
		return err
	}))
	return lot
}

func (suite *UnitOfWorkIntegrationTestSuite) lot(id uuid.UUID) *stock.Lot {
	lot, err := suite.factory.Create().LotRepository().Get(suite.ctx, id)
	suite.Require().NoError(err)
	return lot
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(suite.ctx))

	p, err := stock.NewProduct(uuid.New(), "RICE-1", "Rice", "Dry Food")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProductRepository().Add(suite.ctx, p))
	suite.Require().NoError(uow.Commit(suite.ctx))

	stored, err := suite.factory.Create().ProductRepository().Get(suite.ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal("RICE-1", stored.SKU())
	suite.Equal("Dry Food", stored.RootCategory())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(suite.ctx))

	p, err := stock.NewProduct(uuid.New(), "RICE-1", "Rice", "Dry Food")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProductRepository().Add(suite.ctx, p))
	suite.Require().NoError(uow.Rollback(suite.ctx))

	_, err = suite.factory.Create().ProductRepository().Get(suite.ctx, p.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	uow := suite.factory.Create()
	suite.Error(uow.Commit(suite.ctx))
	suite.Error(uow.Rollback(suite.ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTracksModifiedAggregates() {
	uow := postgres_adapter.NewGormUnitOfWorkFactory(suite.pg.DB).Create()
	gormUoW, ok := uow.(*postgres_adapter.GormUnitOfWork)
	suite.Require().True(ok)
	suite.Require().NoError(uow.Begin(suite.ctx))

	p, err := stock.NewProduct(uuid.New(), "RICE-1", "Rice", "Dry Food")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProductRepository().Add(suite.ctx, p))
	suite.Require().NoError(p.SetWeightG(1000))
	suite.Require().NoError(uow.ProductRepository().Update(suite.ctx, p))
	suite.Equal(2, gormUoW.TrackedCount())

	suite.Require().NoError(uow.Rollback(suite.ctx))
	suite.Equal(0, gormUoW.TrackedCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConsume_EarliestExpiryFirst() {
	later := suite.receive(10, day("2026-05-01"))
	earlier := suite.receive(5, day("2026-04-01"))
	undated := suite.receive(3, nil)
	suite.now = suite.now.Add(time.Hour)

	suite.Require().NoError(suite.run(0, func(e *engine.Engine) error {
		consumed, err := e.Consume(suite.ctx, engine.ConsumeInput{
			ProductID:    suite.product.ID(),
			Quantity:     7,
			MovementType: stock.MovementOut,
			Actor:        suite.actor,
		})
		if err != nil {
			return err
		}
		suite.Require().Len(consumed, 2)
		suite.Equal(earlier.ID(), consumed[0].Lot.ID())
		suite.Equal(later.ID(), consumed[1].Lot.ID())
		return nil
	}))

	suite.Equal(0, suite.lot(earlier.ID()).OnHand())
	suite.Equal(8, suite.lot(later.ID()).OnHand())
	suite.Equal(3, suite.lot(undated.ID()).OnHand())

	moves, err := suite.factory.Create().MovementRepository().ListByLot(suite.ctx, earlier.ID())
	suite.Require().NoError(err)
	suite.Require().Len(moves, 2)
	suite.Equal(stock.MovementIn, moves[0].Type())
	suite.Equal(stock.MovementOut, moves[1].Type())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReserve_ShortfallLeavesNothingBehind() {
	rice := suite.addProduct("RICE-1", "Dry Food")
	soapLot := suite.receive(10, nil)

	o, err := order.NewOrder(uuid.New(), "ORD-1")
	suite.Require().NoError(err)
	_, err = o.AddLine(suite.product.ID(), 4)
	suite.Require().NoError(err)
	_, err = o.AddLine(rice.ID(), 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(suite.ctx, o))

	err = suite.run(0, func(e *engine.Engine) error {
		_, err := e.Reserve(suite.ctx, o.ID())
		return err
	})
	suite.ErrorIs(err, errs.ErrInsufficientStock)
	suite.Equal(0, suite.lot(soapLot.ID()).Reserved())

	stored, err := suite.factory.Create().OrderRepository().Get(suite.ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusDraft, stored.Status())
	suite.Require().Len(stored.Lines(), 2)
	suite.Equal(suite.product.ID(), stored.Lines()[0].ProductID())
	suite.Empty(stored.Lines()[0].Reservations())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReserveAndPrepare() {
	lot := suite.receive(10, nil)

	o, err := order.NewOrder(uuid.New(), "ORD-2")
	suite.Require().NoError(err)
	_, err = o.AddLine(suite.product.ID(), 6)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(suite.ctx, o))

	suite.Require().NoError(suite.run(0, func(e *engine.Engine) error {
		_, err := e.Reserve(suite.ctx, o.ID())
		return err
	}))
	suite.Equal(6, suite.lot(lot.ID()).Reserved())

	suite.Require().NoError(suite.run(0, func(e *engine.Engine) error {
		_, err := e.Prepare(suite.ctx, o.ID(), suite.actor)
		return err
	}))

	stored, err := suite.factory.Create().OrderRepository().Get(suite.ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusReady, stored.Status())
	suite.Equal(6, stored.Lines()[0].Prepared())
	suite.Empty(stored.Lines()[0].Reservations())
	suite.Require().NotNil(stored.ShipmentID())

	suite.Equal(4, suite.lot(lot.ID()).OnHand())
	suite.Equal(0, suite.lot(lot.ID()).Reserved())

	statuses, err := suite.factory.Create().CartonRepository().StatusesByShipment(suite.ctx, *stored.ShipmentID())
	suite.Require().NoError(err)
	suite.Equal([]carton.Status{carton.StatusAssigned}, statuses)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPack_ConcurrentCartonsGetDistinctCodes() {
	suite.receive(50, nil)

	const workers = 4
	codes := make([]string, workers)
	failures := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			failures[i] = suite.run(20, func(e *engine.Engine) error {
				c, err := e.Pack(suite.ctx, engine.PackInput{
					ProductID: suite.product.ID(),
					Quantity:  1,
					Carton:    engine.PrepareInput{Actor: suite.actor},
				})
				if err != nil {
					return err
				}
				codes[i] = c.Code()
				return nil
			})
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := range workers {
		suite.Require().NoError(failures[i])
		suite.Regexp(`^HP-20260310-\d+$`, codes[i])
		suite.False(seen[codes[i]], "duplicate code %s", codes[i])
		seen[codes[i]] = true
	}
}
