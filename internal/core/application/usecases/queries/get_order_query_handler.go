package queries

import (
	"context"

	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or an ObjectNotFoundError. Lines come back in
// the order they were added.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var found []orderRow
	err := db.Raw(`
		SELECT
			o.id,
			o.reference,
			o.status,
			o.shipment_id,
			s.reference AS shipment_reference
		FROM orders o
		LEFT JOIN shipments s ON s.id = o.shipment_id
		WHERE o.id = ?
	`, query.OrderID()).Scan(&found).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if len(found) == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	result := found[0].response()

	result.Lines = make([]OrderLineResponse, 0)
	err = db.Raw(`
		SELECT
			l.id,
			l.product_id,
			p.sku,
			l.quantity,
			l.reserved,
			l.prepared
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = ?
		ORDER BY l.position
	`, query.OrderID()).Scan(&result.Lines).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return result, nil
}

type orderRow struct {
	ID                uuid.UUID
	Reference         string
	Status            string
	ShipmentID        *uuid.UUID
	ShipmentReference *string
}

func (r orderRow) response() GetOrderQueryResponse {
	return GetOrderQueryResponse{
		ID:                r.ID,
		Reference:         r.Reference,
		Status:            r.Status,
		ShipmentID:        r.ShipmentID,
		ShipmentReference: r.ShipmentReference,
	}
}
