package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request and response bodies of openapi.yaml.

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type Count struct {
	Count int `json:"count"`
}

type NewProduct struct {
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	RootCategory      string           `json:"rootCategory"`
	WeightG           int              `json:"weightG"`
	VolumeCm3         *decimal.Decimal `json:"volumeCm3,omitempty"`
	DefaultLocation   *string          `json:"defaultLocation,omitempty"`
	QuarantineDefault bool             `json:"quarantineDefault"`
	StorageConditions string           `json:"storageConditions"`
	KitComponents     []KitComponent   `json:"kitComponents,omitempty"`
}

type KitComponent struct {
	ProductID openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

type NewReceipt struct {
	Reference string              `json:"reference"`
	DonorID   *openapi_types.UUID `json:"donorId,omitempty"`
	DonorName string              `json:"donorName"`
}

type NewLot struct {
	ProductID         openapi_types.UUID  `json:"productId"`
	Quantity          int                 `json:"quantity"`
	Location          *string             `json:"location,omitempty"`
	LotCode           string              `json:"lotCode"`
	ExpiresOn         *openapi_types.Date `json:"expiresOn,omitempty"`
	ReceivedOn        *openapi_types.Date `json:"receivedOn,omitempty"`
	Status            *string             `json:"status,omitempty"`
	StorageConditions string              `json:"storageConditions"`
	Receipt           *NewReceipt         `json:"receipt,omitempty"`
}

type Adjustment struct {
	Delta       int    `json:"delta"`
	ReasonCode  string `json:"reasonCode"`
	ReasonNotes string `json:"reasonNotes"`
}

type Transfer struct {
	To          string `json:"to"`
	ReasonNotes string `json:"reasonNotes"`
}

type NewCartonFormat struct {
	Name       string          `json:"name"`
	Length     decimal.Decimal `json:"length"`
	Width      decimal.Decimal `json:"width"`
	Height     decimal.Decimal `json:"height"`
	MaxWeightG int             `json:"maxWeightG"`
	IsDefault  bool            `json:"isDefault"`
}

type CartonTarget struct {
	CartonID   *openapi_types.UUID `json:"cartonId,omitempty"`
	Code       string              `json:"code"`
	ShipmentID *openapi_types.UUID `json:"shipmentId,omitempty"`
	Location   *string             `json:"location,omitempty"`
}

type PackRequest struct {
	ProductID openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
	Carton    CartonTarget       `json:"carton"`
}

type LinePackRequest struct {
	Quantity int          `json:"quantity"`
	Carton   CartonTarget `json:"carton"`
}

type QuantityRequest struct {
	Quantity    int    `json:"quantity"`
	ReasonNotes string `json:"reasonNotes"`
}

type CartonStatusChange struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type NewOrderLine struct {
	ProductID openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

type NewOrder struct {
	Reference string         `json:"reference"`
	Lines     []NewOrderLine `json:"lines"`
}

type ShipmentUpdate struct {
	Status   *string `json:"status,omitempty"`
	Disputed *bool   `json:"disputed,omitempty"`
}

type StockLevel struct {
	ProductID    openapi_types.UUID `json:"productId"`
	SKU          string             `json:"sku"`
	Name         string             `json:"name"`
	RootCategory string             `json:"rootCategory"`
	OnHand       int                `json:"onHand"`
	Reserved     int                `json:"reserved"`
	Available    int                `json:"available"`
	Lots         int                `json:"lots"`
}

type Lot struct {
	ID                openapi_types.UUID  `json:"id"`
	ProductID         *openapi_types.UUID `json:"productId,omitempty"`
	LotCode           string              `json:"lotCode"`
	Status            string              `json:"status"`
	OnHand            int                 `json:"onHand"`
	Reserved          int                 `json:"reserved"`
	ExpiresOn         *openapi_types.Date `json:"expiresOn,omitempty"`
	ReceivedOn        *openapi_types.Date `json:"receivedOn,omitempty"`
	Location          string              `json:"location"`
	StorageConditions string              `json:"storageConditions"`
	ReceiptID         *openapi_types.UUID `json:"receiptId,omitempty"`
	ReceiptReference  string              `json:"receiptReference,omitempty"`
}

type Movement struct {
	ID           openapi_types.UUID  `json:"id"`
	Type         string              `json:"type"`
	Quantity     int                 `json:"quantity"`
	FromLocation *string             `json:"fromLocation,omitempty"`
	ToLocation   *string             `json:"toLocation,omitempty"`
	CartonID     *openapi_types.UUID `json:"cartonId,omitempty"`
	ShipmentID   *openapi_types.UUID `json:"shipmentId,omitempty"`
	OrderLineID  *openapi_types.UUID `json:"orderLineId,omitempty"`
	ReasonCode   string              `json:"reasonCode"`
	ReasonNotes  string              `json:"reasonNotes"`
	ActorName    string              `json:"actorName"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type CartonItem struct {
	LotID     openapi_types.UUID `json:"lotId"`
	LotCode   string             `json:"lotCode,omitempty"`
	ProductID openapi_types.UUID `json:"productId"`
	SKU       string             `json:"sku,omitempty"`
	Quantity  int                `json:"quantity"`
}

type Carton struct {
	ID            openapi_types.UUID  `json:"id"`
	Code          string              `json:"code"`
	Origin        string              `json:"origin"`
	Status        string              `json:"status"`
	ShipmentID    *openapi_types.UUID `json:"shipmentId,omitempty"`
	Location      *string             `json:"location,omitempty"`
	TotalQuantity int                 `json:"totalQuantity"`
	Items         []CartonItem        `json:"items"`
}

type CartonEvent struct {
	Previous  string    `json:"previous"`
	Next      string    `json:"next"`
	Reason    string    `json:"reason"`
	ActorName string    `json:"actorName"`
	At        time.Time `json:"at"`
}

type CartonDetails struct {
	Carton
	ShipmentReference *string       `json:"shipmentReference,omitempty"`
	PreparedBy        string        `json:"preparedBy"`
	CreatedAt         time.Time     `json:"createdAt"`
	Events            []CartonEvent `json:"events"`
}

type OrderLine struct {
	ID        openapi_types.UUID `json:"id"`
	ProductID openapi_types.UUID `json:"productId"`
	SKU       string             `json:"sku,omitempty"`
	Quantity  int                `json:"quantity"`
	Reserved  int                `json:"reserved"`
	Prepared  int                `json:"prepared"`
}

type Order struct {
	ID         openapi_types.UUID  `json:"id"`
	Reference  string              `json:"reference"`
	Status     string              `json:"status"`
	ShipmentID *openapi_types.UUID `json:"shipmentId,omitempty"`
	Lines      []OrderLine         `json:"lines"`
}

type OrderDetails struct {
	Order
	ShipmentReference *string `json:"shipmentReference,omitempty"`
}

type Consumed struct {
	LotID    openapi_types.UUID `json:"lotId"`
	Quantity int                `json:"quantity"`
}

type Shipment struct {
	ID        openapi_types.UUID `json:"id"`
	Reference string             `json:"reference"`
	Status    string             `json:"status"`
	Disputed  bool               `json:"disputed"`
	ReadyAt   *time.Time         `json:"readyAt,omitempty"`
}

type ShipmentCarton struct {
	ID       openapi_types.UUID `json:"id"`
	Code     string             `json:"code"`
	Status   string             `json:"status"`
	Quantity int                `json:"quantity"`
}

type ShipmentDetails struct {
	Shipment
	Cartons []ShipmentCarton `json:"cartons"`
}
