// Package http exposes the warehouse use cases over a JSON API described by
// the embedded openapi.yaml.
package http

import (
	"log/slog"
	"net/http"

	"wms/internal/core/application/usecases/commands"
	"wms/internal/core/application/usecases/queries"
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandlers are the write use cases the server dispatches to.
type CommandHandlers struct {
	CreateProduct       commands.CreateProductCommandHandler
	CreateCartonFormat  commands.CreateCartonFormatCommandHandler
	ReceiveStock        commands.ReceiveStockCommandHandler
	AdjustLot           commands.AdjustLotCommandHandler
	TransferLot         commands.TransferLotCommandHandler
	ExpireLots          commands.ExpireLotsCommandHandler
	PackCarton          commands.PackCartonCommandHandler
	UnpackCarton        commands.UnpackCartonCommandHandler
	SetCartonStatus     commands.SetCartonStatusCommandHandler
	CreateOrder         commands.CreateOrderCommandHandler
	ReserveOrder        commands.ReserveOrderCommandHandler
	ReleaseReservation  commands.ReleaseReservationCommandHandler
	ConsumeReservation  commands.ConsumeReservationCommandHandler
	PackFromReservation commands.PackFromReservationCommandHandler
	AssignReadyCartons  commands.AssignReadyCartonsCommandHandler
	PrepareOrder        commands.PrepareOrderCommandHandler
	CancelOrder         commands.CancelOrderCommandHandler
	UpdateShipment      commands.UpdateShipmentCommandHandler
}

// QueryHandlers are the read models the server serves.
type QueryHandlers struct {
	StockLevels  queries.GetStockLevelsQueryHandler
	ProductLots  queries.GetProductLotsQueryHandler
	LotMovements queries.GetLotMovementsQueryHandler
	Order        queries.GetOrderQueryHandler
	Carton       queries.GetCartonQueryHandler
	Shipment     queries.GetShipmentQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(commandHandlers CommandHandlers, queryHandlers QueryHandlers, logger *slog.Logger) *Server {
	return &Server{
		commands: commandHandlers,
		queries:  queryHandlers,
		logger:   logger.With("component", "http"),
	}
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var body NewProduct
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := parseLocation(body.DefaultLocation)
	if err != nil {
		return s.fail(ctx, err)
	}
	attributes := commands.ProductAttributes{
		WeightG:           body.WeightG,
		DefaultLocation:   location,
		QuarantineDefault: body.QuarantineDefault,
		StorageConditions: body.StorageConditions,
	}
	if body.VolumeCm3 != nil {
		attributes.VolumeCm3 = *body.VolumeCm3
	}
	for _, c := range body.KitComponents {
		attributes.KitComponents = append(attributes.KitComponents,
			stock.KitComponent{ComponentID: c.ProductID, Quantity: c.Quantity})
	}

	id := uuid.New()
	cmd, err := commands.NewCreateProductCommand(id, body.SKU, body.Name, body.RootCategory, attributes)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.commands.CreateProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: id})
}

// GetProductLots handles GET /api/v1/products/{productId}/lots.
func (s *Server) GetProductLots(ctx echo.Context, productID openapi_types.UUID) error {
	query, err := queries.NewGetProductLotsQuery(productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	lots, err := s.queries.ProductLots.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Lot, len(lots))
	for i, lot := range lots {
		response[i] = Lot{
			ID:                lot.ID,
			LotCode:           lot.LotCode,
			Status:            lot.Status,
			OnHand:            lot.OnHand,
			Reserved:          lot.Reserved,
			ExpiresOn:         toDate(lot.ExpiresOn),
			ReceivedOn:        toDate(lot.ReceivedOn),
			Location:          lot.Location,
			StorageConditions: lot.StorageConditions,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetStockLevels handles GET /api/v1/stock.
func (s *Server) GetStockLevels(ctx echo.Context, params GetStockLevelsParams) error {
	category := ""
	if params.Category != nil {
		category = *params.Category
	}

	levels, err := s.queries.StockLevels.Handle(ctx.Request().Context(), queries.NewGetStockLevelsQuery(category))
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]StockLevel, len(levels))
	for i, level := range levels {
		response[i] = StockLevel(level)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ReceiveStock handles POST /api/v1/lots.
func (s *Server) ReceiveStock(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body NewLot
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := parseLocation(body.Location)
	if err != nil {
		return s.fail(ctx, err)
	}
	attributes := stock.LotAttributes{
		LotCode:           body.LotCode,
		ExpiresOn:         fromDate(body.ExpiresOn),
		ReceivedOn:        fromDate(body.ReceivedOn),
		StorageConditions: body.StorageConditions,
	}
	if body.Status != nil {
		if attributes.Status, err = stock.ParseLotStatus(*body.Status); err != nil {
			return s.fail(ctx, err)
		}
	}
	var receipt *commands.ReceiptInput
	if body.Receipt != nil {
		receipt = &commands.ReceiptInput{Reference: body.Receipt.Reference}
		if body.Receipt.DonorID != nil {
			receipt.Donor = &stock.Donor{ID: *body.Receipt.DonorID, Name: body.Receipt.DonorName}
		}
	}

	cmd, err := commands.NewReceiveStockCommand(body.ProductID, body.Quantity, location, attributes, receipt, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.commands.ReceiveStock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, lotFromDomain(result.Lot, result.Receipt))
}

// ExpireLots handles POST /api/v1/lots/expire.
func (s *Server) ExpireLots(ctx echo.Context) error {
	count, err := s.commands.ExpireLots.Handle(ctx.Request().Context(), commands.NewExpireLotsCommand())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Count{Count: count})
}

// AdjustLot handles POST /api/v1/lots/{lotId}/adjustments.
func (s *Server) AdjustLot(ctx echo.Context, lotID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body Adjustment
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdjustLotCommand(lotID, body.Delta, body.ReasonCode, body.ReasonNotes, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	lot, err := s.commands.AdjustLot.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, lotFromDomain(lot, nil))
}

// TransferLot handles POST /api/v1/lots/{lotId}/transfers.
func (s *Server) TransferLot(ctx echo.Context, lotID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body Transfer
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	to, err := kernel.ParseLocation(body.To)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewTransferLotCommand(lotID, to, body.ReasonNotes, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	lot, err := s.commands.TransferLot.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, lotFromDomain(lot, nil))
}

// GetLotMovements handles GET /api/v1/lots/{lotId}/movements.
func (s *Server) GetLotMovements(ctx echo.Context, lotID openapi_types.UUID) error {
	query, err := queries.NewGetLotMovementsQuery(lotID)
	if err != nil {
		return s.fail(ctx, err)
	}

	movements, err := s.queries.LotMovements.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Movement, len(movements))
	for i, m := range movements {
		response[i] = Movement(m)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateCartonFormat handles POST /api/v1/carton-formats.
func (s *Server) CreateCartonFormat(ctx echo.Context) error {
	var body NewCartonFormat
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	dimensions, err := kernel.NewDimensions(body.Length, body.Width, body.Height)
	if err != nil {
		return s.fail(ctx, err)
	}
	id := uuid.New()
	cmd, err := commands.NewCreateCartonFormatCommand(id, body.Name, dimensions, body.MaxWeightG, body.IsDefault)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.commands.CreateCartonFormat.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: id})
}

func cartonTarget(body CartonTarget) (commands.CartonTarget, error) {
	location, err := parseLocation(body.Location)
	if err != nil {
		return commands.CartonTarget{}, err
	}
	return commands.CartonTarget{
		CartonID:   body.CartonID,
		Code:       body.Code,
		ShipmentID: body.ShipmentID,
		Location:   location,
	}, nil
}

// PackCarton handles POST /api/v1/cartons/pack.
func (s *Server) PackCarton(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body PackRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := cartonTarget(body.Carton)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewPackCartonCommand(body.ProductID, body.Quantity, target, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.commands.PackCarton.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cartonFromDomain(c))
}

// GetCarton handles GET /api/v1/cartons/{code}.
func (s *Server) GetCarton(ctx echo.Context, code string) error {
	query, err := queries.NewGetCartonQuery(code)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.queries.Carton.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := CartonDetails{
		Carton: Carton{
			ID:         c.ID,
			Code:       c.Code,
			Origin:     c.Origin,
			Status:     c.Status,
			ShipmentID: c.ShipmentID,
			Location:   c.Location,
			Items:      make([]CartonItem, len(c.Items)),
		},
		ShipmentReference: c.ShipmentReference,
		PreparedBy:        c.PreparedByName,
		CreatedAt:         c.CreatedAt,
		Events:            make([]CartonEvent, len(c.Events)),
	}
	for i, item := range c.Items {
		response.Items[i] = CartonItem(item)
		response.TotalQuantity += item.Quantity
	}
	for i, event := range c.Events {
		response.Events[i] = CartonEvent(event)
	}
	return ctx.JSON(http.StatusOK, response)
}

// UnpackCarton handles POST /api/v1/cartons/{cartonId}/unpack.
func (s *Server) UnpackCarton(ctx echo.Context, cartonID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUnpackCartonCommand(cartonID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.commands.UnpackCarton.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cartonFromDomain(c))
}

// SetCartonStatus handles POST /api/v1/cartons/{cartonId}/status.
func (s *Server) SetCartonStatus(ctx echo.Context, cartonID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body CartonStatusChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := carton.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewSetCartonStatusCommand(cartonID, status, body.Reason, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.commands.SetCartonStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cartonFromDomain(c))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.OrderLineInput, len(body.Lines))
	for i, line := range body.Lines {
		lines[i] = commands.OrderLineInput{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	id := uuid.New()
	cmd, err := commands.NewCreateOrderCommand(id, body.Reference, lines)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.commands.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: id})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.queries.Order.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := OrderDetails{
		Order: Order{
			ID:         o.ID,
			Reference:  o.Reference,
			Status:     o.Status,
			ShipmentID: o.ShipmentID,
			Lines:      make([]OrderLine, len(o.Lines)),
		},
		ShipmentReference: o.ShipmentReference,
	}
	for i, line := range o.Lines {
		response.Lines[i] = OrderLine(line)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ReserveOrder handles POST /api/v1/orders/{orderId}/reserve.
func (s *Server) ReserveOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	cmd, err := commands.NewReserveOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	o, err := s.commands.ReserveOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// PrepareOrder handles POST /api/v1/orders/{orderId}/prepare.
func (s *Server) PrepareOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPrepareOrderCommand(orderID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	assigned, err := s.commands.PrepareOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Count{Count: assigned})
}

// AssignReadyCartons handles POST /api/v1/orders/{orderId}/assign-cartons.
func (s *Server) AssignReadyCartons(ctx echo.Context, orderID openapi_types.UUID) error {
	cmd, err := commands.NewAssignReadyCartonsCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	assigned, err := s.commands.AssignReadyCartons.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Count{Count: assigned})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	o, err := s.commands.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// ReleaseReservation handles POST /api/v1/order-lines/{lineId}/release.
func (s *Server) ReleaseReservation(ctx echo.Context, lineID openapi_types.UUID) error {
	var body QuantityRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReleaseReservationCommand(lineID, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}
	o, err := s.commands.ReleaseReservation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// ConsumeReservation handles POST /api/v1/order-lines/{lineId}/consume.
func (s *Server) ConsumeReservation(ctx echo.Context, lineID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body QuantityRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConsumeReservationCommand(lineID, body.Quantity, body.ReasonNotes, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	consumed, err := s.commands.ConsumeReservation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, consumedFromDomain(consumed))
}

// PackFromReservation handles POST /api/v1/order-lines/{lineId}/pack.
func (s *Server) PackFromReservation(ctx echo.Context, lineID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body LinePackRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := cartonTarget(body.Carton)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewPackFromReservationCommand(lineID, body.Quantity, target, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.commands.PackFromReservation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cartonFromDomain(c))
}

// GetShipment handles GET /api/v1/shipments/{shipmentId}.
func (s *Server) GetShipment(ctx echo.Context, shipmentID openapi_types.UUID) error {
	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return s.fail(ctx, err)
	}

	shp, err := s.queries.Shipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := ShipmentDetails{
		Shipment: Shipment{
			ID:        shp.ID,
			Reference: shp.Reference,
			Status:    shp.Status,
			Disputed:  shp.Disputed,
			ReadyAt:   shp.ReadyAt,
		},
		Cartons: make([]ShipmentCarton, len(shp.Cartons)),
	}
	for i, c := range shp.Cartons {
		response.Cartons[i] = ShipmentCarton(c)
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateShipment handles PATCH /api/v1/shipments/{shipmentId}.
func (s *Server) UpdateShipment(ctx echo.Context, shipmentID openapi_types.UUID) error {
	var body ShipmentUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var status *shipment.Status
	if body.Status != nil {
		parsed, err := shipment.ParseStatus(*body.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		status = &parsed
	}
	cmd, err := commands.NewUpdateShipmentCommand(shipmentID, status, body.Disputed)
	if err != nil {
		return s.fail(ctx, err)
	}
	shp, err := s.commands.UpdateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, shipmentFromDomain(shp))
}
