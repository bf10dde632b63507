package ports

import (
	"context"

	"wms/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

type ShipmentRepository interface {
	Add(ctx context.Context, s *shipment.Shipment) error
	Update(ctx context.Context, s *shipment.Shipment) error
	Get(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error)

	// ReferencesForYear lists the six character references starting with
	// the two-digit prefix of year.
	ReferencesForYear(ctx context.Context, year int) ([]string, error)
}
