// Package order provides the Order aggregate: a customer order whose lines
// soft-reserve lot stock and are then prepared into cartons.
//
// The package includes:
//   - Order: the aggregate root, gating every line operation on its status
//   - Line: product and requested quantity, with reserved and prepared counters
//   - Reservation: the quantity of one lot soft-committed to one line
//   - Status: draft -> reserved -> preparing -> ready -> shipped, plus the
//     absorbing cancelled state, with an explicit transition table
//
// Key business rules:
//   - For every line, prepared + reserved <= quantity
//   - A line's reserved counter equals the sum of its reservations
//   - Cancelled and shipped orders accept no further changes
package order
