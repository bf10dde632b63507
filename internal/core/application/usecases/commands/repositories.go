// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"wms/internal/core/application/engine"
	"wms/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// CartonFormatRepoFactory provides access to carton format repository within a transaction.
	CartonFormatRepoFactory interface {
		CartonFormatRepository() ports.CartonFormatRepository
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductUoW manages transactions for catalog-only operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// CartonFormatUoW manages transactions that only touch carton formats.
	CartonFormatUoW interface {
		TxManager
		CartonFormatRepoFactory
	}

	CartonFormatUoWFactory interface {
		Create() CartonFormatUoW
	}

	// OrderUoW manages transactions creating orders. Products are read to
	// check that every line refers to a known product.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW exposes every repository. The warehouse engine is bound to it for
	// the duration of one command.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   lot, err := engine.New(uow, opts).Adjust(ctx, in)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ports.Repositories
	}

	// UoWFactory creates new unit of work instances for engine operations.
	UoWFactory interface {
		Create() UoW
	}
)

// inEngine runs fn inside a fresh transaction with an engine bound to it.
// The transaction commits only when fn succeeds.
func inEngine(ctx context.Context, factory UoWFactory, opts engine.Options, fn func(e *engine.Engine) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(engine.New(uow, opts)); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
