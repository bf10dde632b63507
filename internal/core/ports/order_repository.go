package ports

import (
	"context"

	"wms/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderRepository stores orders together with their lines and reservations.
type OrderRepository interface {
	Add(ctx context.Context, o *order.Order) error

	// Update writes the order and synchronises its lines and reservations:
	// reservations no longer on a line are deleted.
	Update(ctx context.Context, o *order.Order) error

	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// GetForUpdate locks the order row, its lines and its reservations.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// GetByLineForUpdate locks the order owning lineID.
	GetByLineForUpdate(ctx context.Context, lineID uuid.UUID) (*order.Order, error)
}
