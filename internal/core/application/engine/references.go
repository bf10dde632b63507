package engine

import (
	"context"
	"errors"
	"time"

	"wms/internal/core/domain/model/reference"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"
)

// NextReceiptReference issues the YY-SS-DDD-CC reference of a receipt
// received on receivedOn. Anonymous receipts use XXX and a donor count of 0.
func (e *Engine) NextReceiptReference(ctx context.Context, receivedOn time.Time, donor *stock.Donor) (string, error) {
	year := receivedOn.Year()
	receipts := e.repos.ReceiptRepository()

	sequence, err := e.nextNumber(ctx, reference.ReceiptScope(year), func() (int, error) {
		refs, err := receipts.ReferencesForYear(ctx, year)
		if err != nil {
			return 0, err
		}
		return reference.MaxReceiptSequence(year, refs), nil
	})
	if err != nil {
		return "", err
	}

	donorName, donorCount := "", 0
	if donor != nil {
		donorName = donor.Name
		donorCount, err = e.nextNumber(ctx, reference.DonorScope(year, donor.ID), func() (int, error) {
			refs, err := receipts.ReferencesForDonor(ctx, donor.ID, year)
			if err != nil {
				return 0, err
			}
			return reference.MaxDonorCount(year, refs), nil
		})
		if err != nil {
			return "", err
		}
	}

	return reference.FormatReceipt(year, sequence, donorName, donorCount), nil
}

// NextShipmentReference issues the YYNNNN reference of a new shipment.
func (e *Engine) NextShipmentReference(ctx context.Context) (string, error) {
	year := e.now().Year()
	sequence, err := e.nextNumber(ctx, reference.ShipmentScope(year), func() (int, error) {
		refs, err := e.repos.ShipmentRepository().ReferencesForYear(ctx, year)
		if err != nil {
			return 0, err
		}
		return reference.MaxShipmentSequence(year, refs), nil
	})
	if err != nil {
		return "", err
	}
	return reference.FormatShipment(year, sequence), nil
}

// nextNumber locks the counter of scope, lifts it above every number already
// issued and advances it.
func (e *Engine) nextNumber(ctx context.Context, scope reference.Scope, issued func() (int, error)) (int, error) {
	counter, err := e.lockCounter(ctx, scope)
	if err != nil {
		return 0, err
	}

	floor, err := issued()
	if err != nil {
		return 0, err
	}
	counter.Raise(floor)
	next := counter.Next()

	if err = e.repos.SequenceRepository().Update(ctx, counter); err != nil {
		return 0, err
	}
	return next, nil
}

// lockCounter returns the locked counter of scope, creating it on first use.
// When another transaction creates it first the insert fails on the unique
// scope and the row committed by the winner is locked instead.
func (e *Engine) lockCounter(ctx context.Context, scope reference.Scope) (*reference.Counter, error) {
	sequences := e.repos.SequenceRepository()

	counter, err := sequences.GetForUpdate(ctx, scope)
	if err == nil {
		return counter, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	counter, err = reference.NewCounter(scope, 0)
	if err != nil {
		return nil, err
	}
	err = sequences.Add(ctx, counter)
	if err == nil {
		return counter, nil
	}
	if !errors.Is(err, errs.ErrDuplicateKey) {
		return nil, err
	}

	e.recorder.RecordCodeCollision(scope.Kind.String())
	e.logger.DebugContext(ctx, "sequence created concurrently", "scope", scope.Key())
	return sequences.GetForUpdate(ctx, scope)
}
