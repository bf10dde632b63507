package ports

import (
	"context"
	"time"

	"wms/internal/core/domain/model/carton"

	"github.com/google/uuid"
)

// CartonRepository stores cartons with their items and status history.
type CartonRepository interface {
	// Add inserts the carton. A code already in use yields
	// errs.DuplicateKeyError and leaves the transaction usable.
	Add(ctx context.Context, c *carton.Carton) error

	// Update writes the carton, replaces its items and appends the status
	// events drained from it. A code clash yields errs.DuplicateKeyError.
	Update(ctx context.Context, c *carton.Carton) error

	Get(ctx context.Context, id uuid.UUID) (*carton.Carton, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*carton.Carton, error)

	// GetByCode returns errs.ObjectNotFoundError for unknown codes.
	GetByCode(ctx context.Context, code string) (*carton.Carton, error)

	// CodesForDate lists the codes containing "-<date>-", date formatted as
	// carton.CodeDate.
	CodesForDate(ctx context.Context, date time.Time) ([]string, error)

	// ListReadyUnassigned locks and returns packed cartons without a
	// shipment, ordered by code.
	ListReadyUnassigned(ctx context.Context) ([]*carton.Carton, error)

	// StatusesByShipment returns the status of every carton linked to
	// shipmentID.
	StatusesByShipment(ctx context.Context, shipmentID uuid.UUID) ([]carton.Status, error)

	ListEvents(ctx context.Context, cartonID uuid.UUID) ([]carton.StatusEvent, error)
}

// CartonFormatRepository stores the carton models known to the warehouse.
type CartonFormatRepository interface {
	Add(ctx context.Context, format *carton.Format) error

	// Default returns the format flagged default, else the first one by
	// name. errs.ObjectNotFoundError means no format exists.
	Default(ctx context.Context) (*carton.Format, error)
}
