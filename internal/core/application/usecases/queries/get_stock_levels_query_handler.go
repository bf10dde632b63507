package queries

import (
	"context"

	"wms/internal/core/domain/model/stock"

	"gorm.io/gorm"
)

// GetStockLevelsQueryHandler aggregates lot quantities per product with a
// single SQL statement.
type GetStockLevelsQueryHandler struct {
	db *gorm.DB
}

func NewGetStockLevelsQueryHandler(db *gorm.DB) GetStockLevelsQueryHandler {
	return GetStockLevelsQueryHandler{db: db}
}

// Handle returns one row per product sorted by SKU. Products without lots
// are included with zero quantities.
func (h GetStockLevelsQueryHandler) Handle(
	ctx context.Context,
	query GetStockLevelsQuery,
) ([]GetStockLevelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	levels := make([]GetStockLevelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.sku,
			p.name,
			p.root_category,
			COALESCE(SUM(l.on_hand), 0),
			COALESCE(SUM(l.reserved), 0),
			COALESCE(SUM(l.on_hand - l.reserved) FILTER (WHERE l.status = @available), 0),
			COUNT(l.id)
		FROM products p
		LEFT JOIN lots l ON l.product_id = p.id
		WHERE @category = '' OR p.root_category = @category
		GROUP BY p.id, p.sku, p.name, p.root_category
		ORDER BY p.sku
	`, map[string]any{
		"available": stock.LotStatusAvailable.String(),
		"category":  query.Category(),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var level GetStockLevelsQueryResponse
		err = rows.Scan(
			&level.ProductID,
			&level.SKU,
			&level.Name,
			&level.RootCategory,
			&level.OnHand,
			&level.Reserved,
			&level.Available,
			&level.Lots,
		)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	return levels, rows.Err()
}
