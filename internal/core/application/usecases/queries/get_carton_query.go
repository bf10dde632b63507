package queries

import (
	"errors"
	"strings"
	"time"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrGetCartonQueryIsNotConstructed = errors.New(
		"GetCartonQuery must be created via NewGetCartonQuery constructor",
	)
)

// GetCartonQuery reads a carton by its code together with its contents and
// status history.
type GetCartonQuery struct {
	code string

	guard guard.ConstructorGuard
}

func NewGetCartonQuery(code string) (GetCartonQuery, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return GetCartonQuery{}, errs.NewValueIsRequiredError("carton code")
	}
	return GetCartonQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartonQuery) Validate() error {
	return q.guard.Validate(ErrGetCartonQueryIsNotConstructed)
}

func (q GetCartonQuery) Code() string { return q.code }

type GetCartonQueryResponse struct {
	ID                uuid.UUID
	Code              string
	Origin            string
	Status            string
	ShipmentID        *uuid.UUID
	ShipmentReference *string
	Location          *string
	PreparedByName    string
	CreatedAt         time.Time
	Items             []CartonItemResponse
	Events            []CartonEventResponse
}

type CartonItemResponse struct {
	LotID     uuid.UUID
	LotCode   string
	ProductID uuid.UUID
	SKU       string
	Quantity  int
}

type CartonEventResponse struct {
	Previous  string
	Next      string
	Reason    string
	ActorName string
	At        time.Time
}
