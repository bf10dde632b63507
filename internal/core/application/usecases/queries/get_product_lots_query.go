package queries

import (
	"errors"
	"time"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrGetProductLotsQueryIsNotConstructed = errors.New(
		"GetProductLotsQuery must be created via NewGetProductLotsQuery constructor",
	)
)

// GetProductLotsQuery lists the lots of one product in the order the
// allocator would pick them.
type GetProductLotsQuery struct {
	productID uuid.UUID

	guard guard.ConstructorGuard
}

func NewGetProductLotsQuery(productID uuid.UUID) (GetProductLotsQuery, error) {
	if productID == uuid.Nil {
		return GetProductLotsQuery{}, errs.NewValueIsRequiredError("product id")
	}
	return GetProductLotsQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductLotsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductLotsQueryIsNotConstructed)
}

func (q GetProductLotsQuery) ProductID() uuid.UUID { return q.productID }

type GetProductLotsQueryResponse struct {
	ID                uuid.UUID
	LotCode           string
	Status            string
	OnHand            int
	Reserved          int
	ExpiresOn         *time.Time
	ReceivedOn        *time.Time
	Location          string
	StorageConditions string
}
