package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"wms/internal/adapters/out/memory"
	"wms/internal/core/application/engine"
	"wms/internal/core/application/usecases/commands"
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// EngineHandlersTestSuite drives the engine-backed handlers over in-memory
// repositories while the transaction calls are recorded by a spy.
type EngineHandlersTestSuite struct {
	suite.Suite
	ctx     context.Context
	uow     *SpyUoW
	factory SpyUoWFactory
	options engine.Options
	actor   kernel.Actor
	soap    *stock.Product
}

func TestEngineHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(EngineHandlersTestSuite))
}

func (s *EngineHandlersTestSuite) SetupTest() {
	s.ctx = context.Background()
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	s.options = engine.Options{Now: func() time.Time { return now }}

	s.uow = &SpyUoW{Repositories: memory.NewUnitOfWorkFactory(memory.NewStore()).Create()}
	s.uow.On("Begin", mock.Anything).Return(nil)
	s.uow.On("Rollback", mock.Anything).Return(nil)
	s.factory = SpyUoWFactory{uow: s.uow}

	actor, err := kernel.NewActor(uuid.New(), "packer")
	s.Require().NoError(err)
	s.actor = actor

	shelf := kernel.MustParseLocation("WH1-A-01-01")
	s.soap, err = stock.NewProduct(uuid.New(), "SOAP-1", "Liquid soap", "Hygiene Products")
	s.Require().NoError(err)
	s.Require().NoError(s.soap.SetWeightG(500))
	s.Require().NoError(s.soap.SetVolumeCm3(decimal.NewFromInt(1000)))
	s.Require().NoError(s.soap.SetDefaultLocation(&shelf))
	s.Require().NoError(s.uow.ProductRepository().Add(s.ctx, s.soap))

	dims, err := kernel.NewDimensions(decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(30))
	s.Require().NoError(err)
	format, err := carton.NewFormat(uuid.New(), "standard", dims, 20000, true)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.CartonFormatRepository().Add(s.ctx, format))
}

func (s *EngineHandlersTestSuite) expectCommit() {
	s.uow.On("Commit", mock.Anything).Return(nil)
}

func (s *EngineHandlersTestSuite) receive(quantity int) *stock.Lot {
	s.expectCommit()
	cmd, err := commands.NewReceiveStockCommand(s.soap.ID(), quantity, nil, stock.LotAttributes{}, nil, s.actor)
	s.Require().NoError(err)
	h := commands.NewReceiveStockCommandHandler(s.factory, s.options)
	res, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	return res.Lot
}

func (s *EngineHandlersTestSuite) newOrder(quantity int) *order.Order {
	o, err := order.NewOrder(uuid.New(), "ORD-"+uuid.NewString()[:8])
	s.Require().NoError(err)
	_, err = o.AddLine(s.soap.ID(), quantity)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.OrderRepository().Add(s.ctx, o))
	return o
}

func (s *EngineHandlersTestSuite) TestReceiveStock_Commits() {
	lot := s.receive(8)

	stored, err := s.uow.LotRepository().Get(s.ctx, lot.ID())
	s.Require().NoError(err)
	s.Equal(8, stored.OnHand())
	s.Equal("WH1-A-01-01", stored.Location().String())
	s.uow.AssertCalled(s.T(), "Commit", mock.Anything)
}

func (s *EngineHandlersTestSuite) TestReserveOrder_ShortfallDoesNotCommit() {
	s.receive(2)
	s.uow.ExpectedCalls = nil
	s.uow.Calls = nil
	s.uow.On("Begin", mock.Anything).Return(nil).Once()
	s.uow.On("Rollback", mock.Anything).Return(nil).Once()

	o := s.newOrder(5)
	cmd, err := commands.NewReserveOrderCommand(o.ID())
	s.Require().NoError(err)

	h := commands.NewReserveOrderCommandHandler(s.factory, s.options)
	_, err = h.Handle(s.ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrInsufficientStock)
	s.Contains(err.Error(), "SOAP-1")
	s.uow.AssertNotCalled(s.T(), "Commit", mock.Anything)
	s.uow.AssertExpectations(s.T())
}

func (s *EngineHandlersTestSuite) TestReserveAndPrepare() {
	lot := s.receive(10)
	o := s.newOrder(6)

	reserveCmd, err := commands.NewReserveOrderCommand(o.ID())
	s.Require().NoError(err)
	reserve := commands.NewReserveOrderCommandHandler(s.factory, s.options)
	reserved, err := reserve.Handle(s.ctx, reserveCmd)
	s.Require().NoError(err)
	s.Equal(order.StatusReserved, reserved.Status())

	prepareCmd, err := commands.NewPrepareOrderCommand(o.ID(), s.actor)
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prepare := commands.NewPrepareOrderCommandHandler(s.factory, s.options, logger)
	assigned, err := prepare.Handle(s.ctx, prepareCmd)
	s.Require().NoError(err)
	s.Zero(assigned)

	stored, err := s.uow.OrderRepository().Get(s.ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.StatusReady, stored.Status())

	l, err := s.uow.LotRepository().Get(s.ctx, lot.ID())
	s.Require().NoError(err)
	s.Equal(4, l.OnHand())
	s.Equal(0, l.Reserved())
}

func (s *EngineHandlersTestSuite) TestPackCarton_GeneratesCode() {
	s.receive(5)

	cmd, err := commands.NewPackCartonCommand(s.soap.ID(), 2, commands.CartonTarget{}, s.actor)
	s.Require().NoError(err)
	h := commands.NewPackCartonCommandHandler(s.factory, s.options)
	c, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal("HP-20260310-1", c.Code())
	s.Equal(carton.StatusPicking, c.Status())
	s.Equal(2, c.TotalQuantity())
}

func (s *EngineHandlersTestSuite) TestUpdateShipment() {
	shp, err := shipment.NewShipment(uuid.New(), "260001")
	s.Require().NoError(err)
	s.Require().NoError(s.uow.ShipmentRepository().Add(s.ctx, shp))
	s.expectCommit()

	planned := shipment.StatusPlanned
	cmd, err := commands.NewUpdateShipmentCommand(shp.ID(), &planned, nil)
	s.Require().NoError(err)
	h := commands.NewUpdateShipmentCommandHandler(s.factory)
	updated, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal(shipment.StatusPlanned, updated.Status())
	s.True(updated.IsLocked())

	draft := shipment.StatusDraft
	cmd, err = commands.NewUpdateShipmentCommand(shp.ID(), &draft, nil)
	s.Require().NoError(err)
	_, err = h.Handle(s.ctx, cmd)
	s.ErrorIs(err, errs.ErrInvalidTransition)

	disputed := true
	cmd, err = commands.NewUpdateShipmentCommand(shp.ID(), nil, &disputed)
	s.Require().NoError(err)
	updated, err = h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.True(updated.IsDisputed())
}

func TestNewUpdateShipmentCommand_RequiresAChange(t *testing.T) {
	_, err := commands.NewUpdateShipmentCommand(uuid.New(), nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
