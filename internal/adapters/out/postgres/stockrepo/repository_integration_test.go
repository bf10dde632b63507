package stockrepo_test

import (
	"context"
	"testing"
	"time"

	"wms/internal/adapters/out/postgres/pgtest"
	"wms/internal/adapters/out/postgres/stockrepo"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id uuid.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&stockrepo.ProductDTO{},
		&stockrepo.ProductKitItemDTO{},
		&stockrepo.LotDTO{},
		&stockrepo.MovementDTO{},
		&stockrepo.ReceiptDTO{},
	)
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// StockRepositoryIntegrationTestSuite verifies product, lot and receipt
// persistence against PostgreSQL.
type StockRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg       *pgtest.Database
	tracker  *MockAggregateTracker
	products *stockrepo.GormProductRepository
	lots     *stockrepo.GormLotRepository
	receipts *stockrepo.GormReceiptRepository
	product  *stock.Product
}

func TestStockRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StockRepositoryIntegrationTestSuite))
}

func (suite *StockRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), migrate)
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *StockRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.products = stockrepo.NewGormProductRepository(suite.pg.DB, suite.tracker)
	suite.lots = stockrepo.NewGormLotRepository(suite.pg.DB, suite.tracker)
	suite.receipts = stockrepo.NewGormReceiptRepository(suite.pg.DB)

	p, err := stock.NewProduct(uuid.New(), "SOAP-1", "Liquid soap", "Hygiene Products")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.products.Add(context.Background(), p))
	suite.product = p
}

func (suite *StockRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *StockRepositoryIntegrationTestSuite) addLot(quantity int, attrs stock.LotAttributes) *stock.Lot {
	lot, err := stock.NewLot(uuid.New(), suite.product, quantity, kernel.MustParseLocation("WH1-A-01-01"), attrs)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.lots.Add(context.Background(), lot))
	return lot
}

func (suite *StockRepositoryIntegrationTestSuite) TestAddProduct_DuplicateSKU() {
	p, err := stock.NewProduct(uuid.New(), "SOAP-1", "Bar soap", "Hygiene Products")
	suite.Require().NoError(err)

	err = suite.products.Add(context.Background(), p)
	suite.ErrorIs(err, errs.ErrDuplicateKey)
}

func (suite *StockRepositoryIntegrationTestSuite) TestProductKitComponents_RoundTrip() {
	ctx := context.Background()
	towel, err := stock.NewProduct(uuid.New(), "TOWEL-1", "Towel", "Hygiene Products")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.products.Add(ctx, towel))

	kit, err := stock.NewProduct(uuid.New(), "KIT-1", "Hygiene kit", "Hygiene Products")
	suite.Require().NoError(err)
	suite.Require().NoError(kit.SetKitComponents([]stock.KitComponent{
		{ComponentID: towel.ID(), Quantity: 1},
		{ComponentID: suite.product.ID(), Quantity: 2},
	}))
	suite.Require().NoError(suite.products.Add(ctx, kit))

	loaded, err := suite.products.Get(ctx, kit.ID())
	suite.Require().NoError(err)
	suite.Equal(kit.KitComponents(), loaded.KitComponents())

	suite.Require().NoError(loaded.SetKitComponents([]stock.KitComponent{{ComponentID: towel.ID(), Quantity: 3}}))
	suite.Require().NoError(suite.products.Update(ctx, loaded))

	many, err := suite.products.GetMany(ctx, []uuid.UUID{kit.ID(), towel.ID()})
	suite.Require().NoError(err)
	suite.Equal([]stock.KitComponent{{ComponentID: towel.ID(), Quantity: 3}}, many[kit.ID()].KitComponents())
	suite.False(many[towel.ID()].IsKit())
}

func (suite *StockRepositoryIntegrationTestSuite) TestCandidateLots_FEFOOrder() {
	undated := suite.addLot(3, stock.LotAttributes{ReceivedOn: day("2026-01-05")})
	later := suite.addLot(4, stock.LotAttributes{ExpiresOn: day("2026-06-01"), ReceivedOn: day("2026-01-01")})
	earlier := suite.addLot(5, stock.LotAttributes{ExpiresOn: day("2026-04-01"), ReceivedOn: day("2026-02-01")})
	suite.addLot(6, stock.LotAttributes{ExpiresOn: day("2026-03-01"), Status: stock.LotStatusHold})

	lots, err := suite.lots.CandidateLots(context.Background(), suite.product.ID(), false)
	suite.Require().NoError(err)
	suite.Require().Len(lots, 3)
	suite.Equal(earlier.ID(), lots[0].ID())
	suite.Equal(later.ID(), lots[1].ID())
	suite.Equal(undated.ID(), lots[2].ID())
}

func (suite *StockRepositoryIntegrationTestSuite) TestListExpiredAvailable() {
	ctx := context.Background()
	expired := suite.addLot(2, stock.LotAttributes{ExpiresOn: day("2026-03-09")})
	suite.addLot(2, stock.LotAttributes{ExpiresOn: day("2026-03-10")})
	suite.addLot(2, stock.LotAttributes{})

	tx := suite.pg.DB.Begin()
	defer tx.Rollback()
	lots, err := stockrepo.NewGormLotRepository(tx, suite.tracker).
		ListExpiredAvailable(ctx, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().Len(lots, 1)
	suite.Equal(expired.ID(), lots[0].ID())
}

func (suite *StockRepositoryIntegrationTestSuite) TestLotRoundTrip() {
	ctx := context.Background()
	lot := suite.addLot(10, stock.LotAttributes{LotCode: "B-17", ExpiresOn: day("2026-04-01")})
	suite.Require().NoError(lot.Reserve(4))
	suite.Require().NoError(lot.MoveTo(kernel.MustParseLocation("WH1-B-02-03")))
	suite.Require().NoError(suite.lots.Update(ctx, lot))

	stored, err := suite.lots.Get(ctx, lot.ID())
	suite.Require().NoError(err)
	suite.Equal("B-17", stored.LotCode())
	suite.Equal(10, stored.OnHand())
	suite.Equal(4, stored.Reserved())
	suite.Equal("WH1-B-02-03", stored.Location().String())
	suite.Require().NotNil(stored.ExpiresOn())
	suite.True(day("2026-04-01").Equal(*stored.ExpiresOn()))
}

func (suite *StockRepositoryIntegrationTestSuite) TestReceiptReferences() {
	ctx := context.Background()
	donor := &stock.Donor{ID: uuid.New(), Name: "Food Bank"}
	for _, r := range []struct {
		reference string
		donor     *stock.Donor
		on        string
	}{
		{"26-01-FOO-01", donor, "2026-02-01"},
		{"26-02-XXX-00", nil, "2026-02-03"},
		{"25-14-FOO-07", donor, "2025-11-20"},
	} {
		receipt, err := stock.NewReceipt(uuid.New(), r.reference, r.donor, *day(r.on))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.receipts.Add(ctx, receipt))
	}

	refs, err := suite.receipts.ReferencesForYear(ctx, 2026)
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"26-01-FOO-01", "26-02-XXX-00"}, refs)

	refs, err = suite.receipts.ReferencesForDonor(ctx, donor.ID, 2026)
	suite.Require().NoError(err)
	suite.Equal([]string{"26-01-FOO-01"}, refs)

	dup, err := stock.NewReceipt(uuid.New(), "26-01-FOO-01", donor, *day("2026-02-01"))
	suite.Require().NoError(err)
	suite.ErrorIs(suite.receipts.Add(ctx, dup), errs.ErrDuplicateKey)
}
