package memory

import (
	"context"

	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/reference"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

type ShipmentRepository struct {
	store *Store
}

func (r *ShipmentRepository) Add(_ context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, rec := range r.store.data.shipments {
		if rec.reference == s.Reference() {
			return errs.NewDuplicateKeyError("shipments_reference_key", nil)
		}
	}
	r.store.data.shipments[s.ID()] = shipmentFromDomain(s)
	return nil
}

func (r *ShipmentRepository) Update(_ context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, ok := r.store.data.shipments[s.ID()]; !ok {
		return errs.NewObjectNotFoundError("shipment", s.ID())
	}
	r.store.data.shipments[s.ID()] = shipmentFromDomain(s)
	return nil
}

func (r *ShipmentRepository) Get(_ context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	rec, ok := r.store.data.shipments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", id)
	}
	return rec.toDomain()
}

func (r *ShipmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	return r.Get(ctx, id)
}

func (r *ShipmentRepository) ReferencesForYear(_ context.Context, year int) ([]string, error) {
	prefix := reference.YearPrefix(year)
	var refs []string
	for _, rec := range r.store.data.shipments {
		if len(rec.reference) == 6 && rec.reference[:2] == prefix {
			refs = append(refs, rec.reference)
		}
	}
	return refs, nil
}

type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) Add(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	for _, rec := range r.store.data.orders {
		if rec.reference == o.Reference() {
			return errs.NewDuplicateKeyError("orders_reference_key", nil)
		}
	}
	r.store.data.orders[o.ID()] = orderFromDomain(o)
	return nil
}

func (r *OrderRepository) Update(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, ok := r.store.data.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	r.store.data.orders[o.ID()] = orderFromDomain(o)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id uuid.UUID) (*order.Order, error) {
	rec, ok := r.store.data.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return rec.toDomain()
}

func (r *OrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepository) GetByLineForUpdate(_ context.Context, lineID uuid.UUID) (*order.Order, error) {
	for _, rec := range r.store.data.orders {
		for _, l := range rec.lines {
			if l.id == lineID {
				return rec.toDomain()
			}
		}
	}
	return nil, errs.NewObjectNotFoundError("order line", lineID)
}

type SequenceRepository struct {
	store *Store
}

func (r *SequenceRepository) GetForUpdate(_ context.Context, scope reference.Scope) (*reference.Counter, error) {
	rec, ok := r.store.data.counters[scope.Key()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sequence", scope.Key())
	}
	return reference.NewCounter(rec.scope, rec.lastNumber)
}

func (r *SequenceRepository) Add(_ context.Context, c *reference.Counter) error {
	if err := c.Validate(); err != nil {
		return err
	}
	key := c.Scope().Key()
	if _, ok := r.store.data.counters[key]; ok {
		return errs.NewDuplicateKeyError("reference_sequences_scope_key", nil)
	}
	r.store.data.counters[key] = counterRecord{scope: c.Scope(), lastNumber: c.LastNumber()}
	return nil
}

func (r *SequenceRepository) Update(_ context.Context, c *reference.Counter) error {
	if err := c.Validate(); err != nil {
		return err
	}
	key := c.Scope().Key()
	if _, ok := r.store.data.counters[key]; !ok {
		return errs.NewObjectNotFoundError("sequence", key)
	}
	r.store.data.counters[key] = counterRecord{scope: c.Scope(), lastNumber: c.LastNumber()}
	return nil
}
