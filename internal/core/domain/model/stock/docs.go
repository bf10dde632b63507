// Package stock provides the ledger side of the warehouse model: products,
// the physical lots received for them, and the append-only movements that
// record every quantity change.
//
// The package includes:
//   - Product: catalogue entry referenced (never owned) by lots
//   - Lot: a received batch at a location, with on-hand and reserved quantities
//   - Movement: an immutable audit record of a quantity delta
//   - Receipt: the inbound document a lot can be traced back to
//   - SortFEFO: the first-expired-first-out ordering used by allocation
//
// Key business rules:
//   - For every lot, 0 <= reserved <= on hand at all times
//   - Lots are never deleted, only zeroed
//   - Movement quantities are always positive; the type carries the direction
package stock
