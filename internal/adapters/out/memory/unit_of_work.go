package memory

import (
	"context"
	"errors"

	"wms/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback outside a transaction.
var ErrNoTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is one transaction on a Store. Repositories handed out before
// Begin read and write the committed state directly.
type UnitOfWork struct {
	store    *Store
	snapshot *state
	active   bool
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	uow.store.mu.Lock()
	uow.snapshot = uow.store.data.clone()
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.snapshot = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.store.data = uow.snapshot
	uow.snapshot = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

func (uow *UnitOfWork) ProductRepository() ports.ProductRepository {
	return &ProductRepository{store: uow.store}
}

func (uow *UnitOfWork) LotRepository() ports.LotRepository {
	return &LotRepository{store: uow.store}
}

func (uow *UnitOfWork) MovementRepository() ports.MovementRepository {
	return &MovementRepository{store: uow.store}
}

func (uow *UnitOfWork) ReceiptRepository() ports.ReceiptRepository {
	return &ReceiptRepository{store: uow.store}
}

func (uow *UnitOfWork) CartonRepository() ports.CartonRepository {
	return &CartonRepository{store: uow.store}
}

func (uow *UnitOfWork) CartonFormatRepository() ports.CartonFormatRepository {
	return &CartonFormatRepository{store: uow.store}
}

func (uow *UnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return &ShipmentRepository{store: uow.store}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store}
}

func (uow *UnitOfWork) SequenceRepository() ports.SequenceRepository {
	return &SequenceRepository{store: uow.store}
}
