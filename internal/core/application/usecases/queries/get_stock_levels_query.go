// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and read
// committed data straight from PostgreSQL.
package queries

import (
	"errors"

	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrGetStockLevelsQueryIsNotConstructed = errors.New(
		"GetStockLevelsQuery must be created via NewGetStockLevelsQuery constructor",
	)
)

// GetStockLevelsQuery summarises stock per product. An empty category
// returns every product.
//
// Example:
//
//	query := NewGetStockLevelsQuery("Hygiene Products")
//	handler := NewGetStockLevelsQueryHandler(db)
//
//	levels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read stock levels: %w", err)
//	}
type GetStockLevelsQuery struct {
	category string

	guard guard.ConstructorGuard
}

func NewGetStockLevelsQuery(category string) GetStockLevelsQuery {
	return GetStockLevelsQuery{category: category, guard: guard.NewConstructorGuard()}
}

func (q GetStockLevelsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLevelsQueryIsNotConstructed)
}

func (q GetStockLevelsQuery) Category() string { return q.category }

// GetStockLevelsQueryResponse is the stock position of one product.
// OnHand counts every lot; Available only counts allocatable lots.
type GetStockLevelsQueryResponse struct {
	ProductID    uuid.UUID
	SKU          string
	Name         string
	RootCategory string
	OnHand       int
	Reserved     int
	Available    int
	Lots         int
}
