package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	CreateProduct(ctx echo.Context) error
	GetProductLots(ctx echo.Context, productID openapi_types.UUID) error
	GetStockLevels(ctx echo.Context, params GetStockLevelsParams) error
	ReceiveStock(ctx echo.Context) error
	ExpireLots(ctx echo.Context) error
	AdjustLot(ctx echo.Context, lotID openapi_types.UUID) error
	TransferLot(ctx echo.Context, lotID openapi_types.UUID) error
	GetLotMovements(ctx echo.Context, lotID openapi_types.UUID) error
	CreateCartonFormat(ctx echo.Context) error
	PackCarton(ctx echo.Context) error
	GetCarton(ctx echo.Context, code string) error
	UnpackCarton(ctx echo.Context, cartonID openapi_types.UUID) error
	SetCartonStatus(ctx echo.Context, cartonID openapi_types.UUID) error
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	ReserveOrder(ctx echo.Context, orderID openapi_types.UUID) error
	PrepareOrder(ctx echo.Context, orderID openapi_types.UUID) error
	AssignReadyCartons(ctx echo.Context, orderID openapi_types.UUID) error
	CancelOrder(ctx echo.Context, orderID openapi_types.UUID) error
	ReleaseReservation(ctx echo.Context, lineID openapi_types.UUID) error
	ConsumeReservation(ctx echo.Context, lineID openapi_types.UUID) error
	PackFromReservation(ctx echo.Context, lineID openapi_types.UUID) error
	GetShipment(ctx echo.Context, shipmentID openapi_types.UUID) error
	UpdateShipment(ctx echo.Context, shipmentID openapi_types.UUID) error
}

type GetStockLevelsParams struct {
	Category *string `form:"category,omitempty" json:"category,omitempty"`
}

// EchoRouter is the part of *echo.Echo and *echo.Group the routes need.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// ServerInterfaceWrapper binds path and query parameters before calling the
// ServerInterface.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name+": "+err.Error())
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) withID(name string, call func(ctx echo.Context, id openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindUUID(ctx, name)
		if err != nil {
			return err
		}
		return call(ctx, id)
	}
}

func (w *ServerInterfaceWrapper) GetStockLevels(ctx echo.Context) error {
	var params GetStockLevelsParams
	err := runtime.BindQueryParameter("form", true, false, "category", ctx.QueryParams(), &params.Category)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter category: "+err.Error())
	}
	return w.Handler.GetStockLevels(ctx, params)
}

func (w *ServerInterfaceWrapper) GetCarton(ctx echo.Context) error {
	var code string
	err := runtime.BindStyledParameterWithOptions("simple", "code", ctx.Param("code"), &code,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter code: "+err.Error())
	}
	return w.Handler.GetCarton(ctx, code)
}

// RegisterHandlers adds every route of openapi.yaml to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}
	h := w.Handler

	router.POST("/api/v1/products", h.CreateProduct)
	router.GET("/api/v1/products/:productId/lots", w.withID("productId", h.GetProductLots))
	router.GET("/api/v1/stock", w.GetStockLevels)

	router.POST("/api/v1/lots", h.ReceiveStock)
	router.POST("/api/v1/lots/expire", h.ExpireLots)
	router.POST("/api/v1/lots/:lotId/adjustments", w.withID("lotId", h.AdjustLot))
	router.POST("/api/v1/lots/:lotId/transfers", w.withID("lotId", h.TransferLot))
	router.GET("/api/v1/lots/:lotId/movements", w.withID("lotId", h.GetLotMovements))

	router.POST("/api/v1/carton-formats", h.CreateCartonFormat)
	router.POST("/api/v1/cartons/pack", h.PackCarton)
	router.GET("/api/v1/cartons/:code", w.GetCarton)
	router.POST("/api/v1/cartons/:cartonId/unpack", w.withID("cartonId", h.UnpackCarton))
	router.POST("/api/v1/cartons/:cartonId/status", w.withID("cartonId", h.SetCartonStatus))

	router.POST("/api/v1/orders", h.CreateOrder)
	router.GET("/api/v1/orders/:orderId", w.withID("orderId", h.GetOrder))
	router.POST("/api/v1/orders/:orderId/reserve", w.withID("orderId", h.ReserveOrder))
	router.POST("/api/v1/orders/:orderId/prepare", w.withID("orderId", h.PrepareOrder))
	router.POST("/api/v1/orders/:orderId/assign-cartons", w.withID("orderId", h.AssignReadyCartons))
	router.POST("/api/v1/orders/:orderId/cancel", w.withID("orderId", h.CancelOrder))

	router.POST("/api/v1/order-lines/:lineId/release", w.withID("lineId", h.ReleaseReservation))
	router.POST("/api/v1/order-lines/:lineId/consume", w.withID("lineId", h.ConsumeReservation))
	router.POST("/api/v1/order-lines/:lineId/pack", w.withID("lineId", h.PackFromReservation))

	router.GET("/api/v1/shipments/:shipmentId", w.withID("shipmentId", h.GetShipment))
	router.PATCH("/api/v1/shipments/:shipmentId", w.withID("shipmentId", h.UpdateShipment))
}
