package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "wms/internal/adapters/out/postgres"
	"wms/internal/adapters/out/postgres/pgtest"
	"wms/internal/core/application/engine"
	"wms/internal/core/application/usecases/queries"
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/stock"
	"wms/internal/core/ports"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// QueriesIntegrationTestSuite fills the database through the engine and
// reads it back through the query handlers.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
	ctx     context.Context
	now     time.Time
	actor   kernel.Actor
	soap    *stock.Product
	rice    *stock.Product
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	actor, err := kernel.NewActor(uuid.New(), "picker")
	suite.Require().NoError(err)
	suite.actor = actor

	suite.soap = suite.addProduct("SOAP-1", "Hygiene Products")
	suite.rice = suite.addProduct("RICE-1", "Dry Food")

	dims, err := kernel.NewDimensions(decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(30))
	suite.Require().NoError(err)
	format, err := carton.NewFormat(uuid.New(), "standard", dims, 20000, true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CartonFormatRepository().Add(suite.ctx, format))
}

func (suite *QueriesIntegrationTestSuite) addProduct(sku, category string) *stock.Product {
	p, err := stock.NewProduct(uuid.New(), sku, sku+" product", category)
	suite.Require().NoError(err)
	suite.Require().NoError(p.SetWeightG(500))
	suite.Require().NoError(p.SetVolumeCm3(decimal.NewFromInt(1000)))
	location := kernel.MustParseLocation("WH1-A-01-01")
	suite.Require().NoError(p.SetDefaultLocation(&location))
	suite.Require().NoError(suite.factory.Create().ProductRepository().Add(suite.ctx, p))
	return p
}

func (suite *QueriesIntegrationTestSuite) run(fn func(e *engine.Engine) error) {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(suite.ctx))
	defer func() {
		_ = uow.Rollback(suite.ctx)
	}()

	e := engine.New(uow, engine.Options{Now: func() time.Time { return suite.now }})
	suite.Require().NoError(fn(e))
	suite.Require().NoError(uow.Commit(suite.ctx))
}

func (suite *QueriesIntegrationTestSuite) receive(p *stock.Product, quantity int, attrs stock.LotAttributes) *stock.Lot {
	var lot *stock.Lot
	suite.run(func(e *engine.Engine) error {
		res, err := e.Receive(suite.ctx, engine.ReceiveInput{
			ProductID:  p.ID(),
			Quantity:   quantity,
			Attributes: attrs,
			Actor:      suite.actor,
		})
		lot = res.Lot
		return err
	})
	return lot
}

func (suite *QueriesIntegrationTestSuite) TestStockLevels() {
	lot := suite.receive(suite.soap, 10, stock.LotAttributes{})
	suite.receive(suite.soap, 4, stock.LotAttributes{Status: stock.LotStatusQuarantined})
	suite.run(func(e *engine.Engine) error {
		_, err := e.Adjust(suite.ctx, engine.AdjustInput{LotID: lot.ID(), Delta: -3, Actor: suite.actor})
		return err
	})

	levels, err := queries.NewGetStockLevelsQueryHandler(suite.pg.DB).
		Handle(suite.ctx, queries.NewGetStockLevelsQuery(""))
	suite.Require().NoError(err)
	suite.Require().Len(levels, 2)

	suite.Equal("RICE-1", levels[0].SKU)
	suite.Zero(levels[0].OnHand)
	suite.Zero(levels[0].Lots)

	suite.Equal("SOAP-1", levels[1].SKU)
	suite.Equal(11, levels[1].OnHand)
	suite.Equal(7, levels[1].Available)
	suite.Equal(2, levels[1].Lots)

	levels, err = queries.NewGetStockLevelsQueryHandler(suite.pg.DB).
		Handle(suite.ctx, queries.NewGetStockLevelsQuery("Dry Food"))
	suite.Require().NoError(err)
	suite.Require().Len(levels, 1)
	suite.Equal(suite.rice.ID(), levels[0].ProductID)
}

func (suite *QueriesIntegrationTestSuite) TestProductLotsAndMovements() {
	later := suite.receive(suite.soap, 5, stock.LotAttributes{ExpiresOn: day("2026-06-01"), LotCode: "L-2"})
	earlier := suite.receive(suite.soap, 5, stock.LotAttributes{ExpiresOn: day("2026-04-01"), LotCode: "L-1"})
	suite.now = suite.now.Add(time.Hour)
	suite.run(func(e *engine.Engine) error {
		_, err := e.Transfer(suite.ctx, engine.TransferInput{
			LotID: earlier.ID(),
			To:    kernel.MustParseLocation("WH1-B-02-03"),
			Actor: suite.actor,
		})
		return err
	})

	query, err := queries.NewGetProductLotsQuery(suite.soap.ID())
	suite.Require().NoError(err)
	lots, err := queries.NewGetProductLotsQueryHandler(suite.pg.DB).Handle(suite.ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(lots, 2)
	suite.Equal(earlier.ID(), lots[0].ID)
	suite.Equal("WH1-B-02-03", lots[0].Location)
	suite.Equal("available", lots[0].Status)
	suite.Equal(later.ID(), lots[1].ID)

	movementsQuery, err := queries.NewGetLotMovementsQuery(earlier.ID())
	suite.Require().NoError(err)
	movements, err := queries.NewGetLotMovementsQueryHandler(suite.pg.DB).Handle(suite.ctx, movementsQuery)
	suite.Require().NoError(err)
	suite.Require().Len(movements, 2)
	suite.Equal("in", movements[0].Type)
	suite.Equal("transfer", movements[1].Type)
	suite.Require().NotNil(movements[1].FromLocation)
	suite.Equal("WH1-A-01-01", *movements[1].FromLocation)
	suite.Equal("picker", movements[1].ActorName)
}

func (suite *QueriesIntegrationTestSuite) TestOrderCartonAndShipment() {
	suite.receive(suite.soap, 10, stock.LotAttributes{LotCode: "S-1"})
	o, err := order.NewOrder(uuid.New(), "ORD-7")
	suite.Require().NoError(err)
	_, err = o.AddLine(suite.soap.ID(), 3)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(suite.ctx, o))

	suite.run(func(e *engine.Engine) error {
		if _, err := e.Reserve(suite.ctx, o.ID()); err != nil {
			return err
		}
		_, err := e.Prepare(suite.ctx, o.ID(), suite.actor)
		return err
	})

	orderQuery, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.pg.DB).Handle(suite.ctx, orderQuery)
	suite.Require().NoError(err)
	suite.Equal("ORD-7", view.Reference)
	suite.Equal("ready", view.Status)
	suite.Require().NotNil(view.ShipmentReference)
	suite.Equal("260001", *view.ShipmentReference)
	suite.Require().Len(view.Lines, 1)
	suite.Equal("SOAP-1", view.Lines[0].SKU)
	suite.Equal(3, view.Lines[0].Prepared)

	shipmentQuery, err := queries.NewGetShipmentQuery(*view.ShipmentID)
	suite.Require().NoError(err)
	shp, err := queries.NewGetShipmentQueryHandler(suite.pg.DB).Handle(suite.ctx, shipmentQuery)
	suite.Require().NoError(err)
	suite.Equal("260001", shp.Reference)
	suite.Require().Len(shp.Cartons, 1)
	suite.Equal("assigned", shp.Cartons[0].Status)
	suite.Equal(3, shp.Cartons[0].Quantity)

	cartonQuery, err := queries.NewGetCartonQuery(shp.Cartons[0].Code)
	suite.Require().NoError(err)
	c, err := queries.NewGetCartonQueryHandler(suite.pg.DB).Handle(suite.ctx, cartonQuery)
	suite.Require().NoError(err)
	suite.Equal("generated", c.Origin)
	suite.Require().NotNil(c.ShipmentReference)
	suite.Equal("260001", *c.ShipmentReference)
	suite.Require().Len(c.Items, 1)
	suite.Equal("S-1", c.Items[0].LotCode)
	suite.Equal("SOAP-1", c.Items[0].SKU)
	suite.NotEmpty(c.Events)
	suite.Equal("assigned", c.Events[len(c.Events)-1].Next)
}

func (suite *QueriesIntegrationTestSuite) TestNotFound() {
	orderQuery, err := queries.NewGetOrderQuery(uuid.New())
	suite.Require().NoError(err)
	_, err = queries.NewGetOrderQueryHandler(suite.pg.DB).Handle(suite.ctx, orderQuery)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	cartonQuery, err := queries.NewGetCartonQuery("XX-20260310-1")
	suite.Require().NoError(err)
	_, err = queries.NewGetCartonQueryHandler(suite.pg.DB).Handle(suite.ctx, cartonQuery)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	shipmentQuery, err := queries.NewGetShipmentQuery(uuid.New())
	suite.Require().NoError(err)
	_, err = queries.NewGetShipmentQueryHandler(suite.pg.DB).Handle(suite.ctx, shipmentQuery)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}
