package commands_test

import (
	"errors"
	"testing"

	"wms/internal/core/application/usecases/commands"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSoap(t *testing.T) *stock.Product {
	t.Helper()
	p, err := stock.NewProduct(uuid.New(), "SOAP-1", "Liquid soap", "Hygiene Products")
	require.NoError(t, err)
	return p
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	soap := newSoap(t)
	orderID := uuid.New()
	cmd, err := commands.NewCreateOrderCommand(orderID, "ORD-1", []commands.OrderLineInput{
		{ProductID: soap.ID(), Quantity: 6},
	})
	require.NoError(t, err)

	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(products).Once(),
		products.On("GetMany", ctx, []uuid.UUID{soap.ID()}).
			Return(map[uuid.UUID]*stock.Product{soap.ID(): soap}, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.ID() == orderID && len(o.Lines()) == 1 && o.Lines()[0].Quantity() == 6
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	products.AssertExpectations(t)
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{}
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	missing := uuid.New()
	cmd, err := commands.NewCreateOrderCommand(uuid.New(), "ORD-2", []commands.OrderLineInput{
		{ProductID: missing, Quantity: 1},
	})
	require.NoError(t, err)

	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(products).Once()
	products.On("GetMany", ctx, []uuid.UUID{missing}).Return(map[uuid.UUID]*stock.Product{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(uuid.New(), "ORD-3", []commands.OrderLineInput{
		{ProductID: uuid.New(), Quantity: 1},
	})
	require.NoError(t, err)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	assert.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	soap := newSoap(t)
	cmd, err := commands.NewCreateOrderCommand(uuid.New(), "ORD-4", []commands.OrderLineInput{
		{ProductID: soap.ID(), Quantity: 1},
	})
	require.NoError(t, err)

	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(products).Once()
	products.On("GetMany", ctx, mock.Anything).
		Return(map[uuid.UUID]*stock.Product{soap.ID(): soap}, nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	orders.On("Add", ctx, mock.Anything).Return(errs.NewDuplicateKeyError("orders_reference_key", nil)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}
