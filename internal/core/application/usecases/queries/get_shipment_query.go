package queries

import (
	"errors"
	"time"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
)

// GetShipmentQuery reads a shipment and a summary of the cartons linked to it.
type GetShipmentQuery struct {
	shipmentID uuid.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID uuid.UUID) (GetShipmentQuery, error) {
	if shipmentID == uuid.Nil {
		return GetShipmentQuery{}, errs.NewValueIsRequiredError("shipment id")
	}
	return GetShipmentQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ShipmentID() uuid.UUID { return q.shipmentID }

type GetShipmentQueryResponse struct {
	ID        uuid.UUID
	Reference string
	Status    string
	Disputed  bool
	ReadyAt   *time.Time
	Cartons   []ShipmentCartonResponse
}

type ShipmentCartonResponse struct {
	ID       uuid.UUID
	Code     string
	Status   string
	Quantity int
}
