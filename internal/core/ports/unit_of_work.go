package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TxManager handles the transaction lifecycle.
type TxManager interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error
}

// Repositories hands out repositories bound to the current transaction.
type Repositories interface {
	ProductRepository() ProductRepository
	LotRepository() LotRepository
	MovementRepository() MovementRepository
	ReceiptRepository() ReceiptRepository
	CartonRepository() CartonRepository
	CartonFormatRepository() CartonFormatRepository
	ShipmentRepository() ShipmentRepository
	OrderRepository() OrderRepository
	SequenceRepository() SequenceRepository
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	TxManager
	Repositories
}
