package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetLotMovementsQueryHandler struct {
	db *gorm.DB
}

func NewGetLotMovementsQueryHandler(db *gorm.DB) GetLotMovementsQueryHandler {
	return GetLotMovementsQueryHandler{db: db}
}

// Handle returns the journal oldest entry first.
func (h GetLotMovementsQueryHandler) Handle(
	ctx context.Context,
	query GetLotMovementsQuery,
) ([]GetLotMovementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	movements := make([]GetLotMovementsQueryResponse, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			quantity,
			from_location,
			to_location,
			carton_id,
			shipment_id,
			order_line_id,
			reason_code,
			reason_notes,
			actor_name,
			created_at
		FROM stock_movements
		WHERE lot_id = ?
		ORDER BY created_at, seq
	`, query.LotID()).Scan(&movements).Error
	if err != nil {
		return nil, err
	}

	return movements, nil
}
