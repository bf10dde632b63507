// Package ports defines the persistence and planning contracts the
// application layer depends on. Adapters under internal/adapters/out
// implement them.
package ports

import (
	"context"
	"time"

	"wms/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

// ProductRepository stores the product catalogue the ledger refers to.
type ProductRepository interface {
	Add(ctx context.Context, product *stock.Product) error
	Update(ctx context.Context, product *stock.Product) error

	// Get returns errs.ObjectNotFoundError when the product does not exist.
	Get(ctx context.Context, id uuid.UUID) (*stock.Product, error)

	// GetMany returns the products with the given ids, keyed by id. Unknown
	// ids are left out.
	GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*stock.Product, error)
}

// LotRepository stores product lots. Lots are never deleted.
type LotRepository interface {
	Add(ctx context.Context, lot *stock.Lot) error
	Update(ctx context.Context, lot *stock.Lot) error
	Get(ctx context.Context, id uuid.UUID) (*stock.Lot, error)

	// GetForUpdate reads the lot and holds a row lock on it until the
	// transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*stock.Lot, error)

	// ListForUpdate locks the given lots in FEFO order and returns them in
	// that order.
	ListForUpdate(ctx context.Context, ids []uuid.UUID) ([]*stock.Lot, error)

	// CandidateLots returns the available lots of productID with stock left
	// unreserved, in FEFO order. With forUpdate the rows stay locked until
	// the transaction ends.
	CandidateLots(ctx context.Context, productID uuid.UUID, forUpdate bool) ([]*stock.Lot, error)

	// ListExpiredAvailable locks and returns available lots whose expiry date
	// is before today.
	ListExpiredAvailable(ctx context.Context, today time.Time) ([]*stock.Lot, error)
}

// MovementRepository is the append-only movement journal.
type MovementRepository interface {
	Add(ctx context.Context, movement *stock.Movement) error
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*stock.Movement, error)
}

// ReceiptRepository stores inbound receipts and exposes the references
// already issued so that reference counters can catch up with them.
type ReceiptRepository interface {
	Add(ctx context.Context, receipt *stock.Receipt) error
	Get(ctx context.Context, id uuid.UUID) (*stock.Receipt, error)

	// ReferencesForYear lists every receipt reference starting with the
	// two-digit prefix of year.
	ReferencesForYear(ctx context.Context, year int) ([]string, error)

	// ReferencesForDonor lists the references of donorID's receipts received
	// during year.
	ReferencesForDonor(ctx context.Context, donorID uuid.UUID, year int) ([]string, error)
}
