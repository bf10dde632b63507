// Package services provides domain services that work across the stock and
// carton aggregates without belonging to either.
//
// The package includes:
//   - FirstFitDecreasing: the default packing planner, splitting requested
//     product quantities into bins that fit a carton format
//   - DominantTypeCode: the two-letter carton type derived from the products
//     inside a carton
//
// Both are pure functions of their inputs; they read nothing from storage.
package services
