package queries

import (
	"errors"
	"time"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrGetLotMovementsQueryIsNotConstructed = errors.New(
		"GetLotMovementsQuery must be created via NewGetLotMovementsQuery constructor",
	)
)

// GetLotMovementsQuery reads the movement journal of one lot.
type GetLotMovementsQuery struct {
	lotID uuid.UUID

	guard guard.ConstructorGuard
}

func NewGetLotMovementsQuery(lotID uuid.UUID) (GetLotMovementsQuery, error) {
	if lotID == uuid.Nil {
		return GetLotMovementsQuery{}, errs.NewValueIsRequiredError("lot id")
	}
	return GetLotMovementsQuery{lotID: lotID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLotMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetLotMovementsQueryIsNotConstructed)
}

func (q GetLotMovementsQuery) LotID() uuid.UUID { return q.lotID }

type GetLotMovementsQueryResponse struct {
	ID           uuid.UUID
	Type         string
	Quantity     int
	FromLocation *string
	ToLocation   *string
	CartonID     *uuid.UUID
	ShipmentID   *uuid.UUID
	OrderLineID  *uuid.UUID
	ReasonCode   string
	ReasonNotes  string
	ActorName    string
	CreatedAt    time.Time
}
