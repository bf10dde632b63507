// Package memory provides an in-memory implementation of the unit of work
// and of every repository port.
//
// A Store serialises transactions: Begin takes the store lock and keeps it
// until Commit or Rollback, which gives every transaction the isolation the
// PostgreSQL adapter obtains with row locks. Rollback restores the snapshot
// taken at Begin.
package memory

import (
	"maps"
	"sync"

	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/stock"

	"github.com/google/uuid"
)

type state struct {
	products  map[uuid.UUID]productRecord
	lots      map[uuid.UUID]lotRecord
	movements []*stock.Movement
	receipts  map[uuid.UUID]*stock.Receipt
	cartons   map[uuid.UUID]cartonRecord
	events    []carton.StatusEvent
	formats   []*carton.Format
	shipments map[uuid.UUID]shipmentRecord
	orders    map[uuid.UUID]orderRecord
	counters  map[string]counterRecord
}

func newState() *state {
	return &state{
		products:  map[uuid.UUID]productRecord{},
		lots:      map[uuid.UUID]lotRecord{},
		receipts:  map[uuid.UUID]*stock.Receipt{},
		cartons:   map[uuid.UUID]cartonRecord{},
		shipments: map[uuid.UUID]shipmentRecord{},
		orders:    map[uuid.UUID]orderRecord{},
		counters:  map[string]counterRecord{},
	}
}

func (s *state) clone() *state {
	out := &state{
		products:  maps.Clone(s.products),
		lots:      maps.Clone(s.lots),
		movements: append([]*stock.Movement(nil), s.movements...),
		receipts:  maps.Clone(s.receipts),
		cartons:   make(map[uuid.UUID]cartonRecord, len(s.cartons)),
		events:    append([]carton.StatusEvent(nil), s.events...),
		formats:   append([]*carton.Format(nil), s.formats...),
		shipments: maps.Clone(s.shipments),
		orders:    make(map[uuid.UUID]orderRecord, len(s.orders)),
		counters:  maps.Clone(s.counters),
	}
	for id, c := range s.cartons {
		out.cartons[id] = c.clone()
	}
	for id, o := range s.orders {
		out.orders[id] = o.clone()
	}
	return out
}

// Store holds the committed state shared by every unit of work created from
// it.
type Store struct {
	mu   sync.Mutex
	data *state
}

func NewStore() *Store {
	return &Store{data: newState()}
}
