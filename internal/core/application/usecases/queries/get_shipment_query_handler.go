package queries

import (
	"context"
	"time"

	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle returns the shipment with its cartons sorted by code. Quantity is
// the number of units packed in each carton.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var found []shipmentRow
	err := db.Raw(`
		SELECT id, reference, status, disputed, ready_at
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID()).Scan(&found).Error
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if len(found) == 0 {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID())
	}
	result := found[0].response()

	result.Cartons = make([]ShipmentCartonResponse, 0)
	err = db.Raw(`
		SELECT
			c.id,
			c.code,
			c.status,
			COALESCE(SUM(i.quantity), 0) AS quantity
		FROM cartons c
		LEFT JOIN carton_items i ON i.carton_id = c.id
		WHERE c.shipment_id = ?
		GROUP BY c.id, c.code, c.status
		ORDER BY c.code
	`, query.ShipmentID()).Scan(&result.Cartons).Error
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return result, nil
}

type shipmentRow struct {
	ID        uuid.UUID
	Reference string
	Status    string
	Disputed  bool
	ReadyAt   *time.Time
}

func (r shipmentRow) response() GetShipmentQueryResponse {
	return GetShipmentQueryResponse{
		ID:        r.ID,
		Reference: r.Reference,
		Status:    r.Status,
		Disputed:  r.Disputed,
		ReadyAt:   r.ReadyAt,
	}
}
