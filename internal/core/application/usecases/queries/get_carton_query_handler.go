package queries

import (
	"context"
	"time"

	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetCartonQueryHandler struct {
	db *gorm.DB
}

func NewGetCartonQueryHandler(db *gorm.DB) GetCartonQueryHandler {
	return GetCartonQueryHandler{db: db}
}

func (h GetCartonQueryHandler) Handle(ctx context.Context, query GetCartonQuery) (GetCartonQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartonQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var found []cartonRow
	err := db.Raw(`
		SELECT
			c.id,
			c.code,
			c.origin,
			c.status,
			c.shipment_id,
			s.reference AS shipment_reference,
			c.location,
			c.prepared_by_name,
			c.created_at
		FROM cartons c
		LEFT JOIN shipments s ON s.id = c.shipment_id
		WHERE c.code = ?
	`, query.Code()).Scan(&found).Error
	if err != nil {
		return GetCartonQueryResponse{}, err
	}
	if len(found) == 0 {
		return GetCartonQueryResponse{}, errs.NewObjectNotFoundError("carton", query.Code())
	}
	result := found[0].response()

	result.Items = make([]CartonItemResponse, 0)
	err = db.Raw(`
		SELECT
			i.lot_id,
			l.lot_code,
			i.product_id,
			p.sku,
			i.quantity
		FROM carton_items i
		JOIN products p ON p.id = i.product_id
		LEFT JOIN lots l ON l.id = i.lot_id
		WHERE i.carton_id = ?
		ORDER BY p.sku, l.lot_code
	`, result.ID).Scan(&result.Items).Error
	if err != nil {
		return GetCartonQueryResponse{}, err
	}

	result.Events = make([]CartonEventResponse, 0)
	err = db.Raw(`
		SELECT previous, next, reason, actor_name, at
		FROM carton_status_events
		WHERE carton_id = ?
		ORDER BY at, seq
	`, result.ID).Scan(&result.Events).Error
	if err != nil {
		return GetCartonQueryResponse{}, err
	}

	return result, nil
}

type cartonRow struct {
	ID                uuid.UUID
	Code              string
	Origin            string
	Status            string
	ShipmentID        *uuid.UUID
	ShipmentReference *string
	Location          *string
	PreparedByName    string
	CreatedAt         time.Time
}

func (r cartonRow) response() GetCartonQueryResponse {
	return GetCartonQueryResponse{
		ID:                r.ID,
		Code:              r.Code,
		Origin:            r.Origin,
		Status:            r.Status,
		ShipmentID:        r.ShipmentID,
		ShipmentReference: r.ShipmentReference,
		Location:          r.Location,
		PreparedByName:    r.PreparedByName,
		CreatedAt:         r.CreatedAt,
	}
}
