package queries

import (
	"errors"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one order with its lines and the reservation and
// preparation progress of each line.
type GetOrderQuery struct {
	orderID uuid.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID uuid.UUID) (GetOrderQuery, error) {
	if orderID == uuid.Nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order id")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() uuid.UUID { return q.orderID }

type GetOrderQueryResponse struct {
	ID                uuid.UUID
	Reference         string
	Status            string
	ShipmentID        *uuid.UUID
	ShipmentReference *string
	Lines             []OrderLineResponse
}

type OrderLineResponse struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	SKU       string
	Quantity  int
	Reserved  int
	Prepared  int
}
