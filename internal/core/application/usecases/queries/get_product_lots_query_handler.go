package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetProductLotsQueryHandler struct {
	db *gorm.DB
}

func NewGetProductLotsQueryHandler(db *gorm.DB) GetProductLotsQueryHandler {
	return GetProductLotsQueryHandler{db: db}
}

// Handle returns the lots earliest expiry first; lots without an expiry date
// come last.
func (h GetProductLotsQueryHandler) Handle(
	ctx context.Context,
	query GetProductLotsQuery,
) ([]GetProductLotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lots := make([]GetProductLotsQueryResponse, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lot_code,
			status,
			on_hand,
			reserved,
			expires_on,
			received_on,
			location,
			storage_conditions
		FROM lots
		WHERE product_id = ?
		ORDER BY expires_on ASC NULLS LAST, received_on ASC NULLS LAST, id ASC
	`, query.ProductID()).Scan(&lots).Error
	if err != nil {
		return nil, err
	}

	return lots, nil
}
