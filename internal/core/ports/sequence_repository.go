package ports

import (
	"context"

	"wms/internal/core/domain/model/reference"
)

// SequenceRepository stores reference counters, one row per scope.
type SequenceRepository interface {
	// GetForUpdate locks the counter of scope. errs.ObjectNotFoundError means
	// it was never created.
	GetForUpdate(ctx context.Context, scope reference.Scope) (*reference.Counter, error)

	// Add creates a counter. A concurrent creation of the same scope yields
	// errs.DuplicateKeyError and leaves the transaction usable.
	Add(ctx context.Context, counter *reference.Counter) error

	Update(ctx context.Context, counter *reference.Counter) error
}
