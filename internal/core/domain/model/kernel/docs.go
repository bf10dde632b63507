// Package kernel holds the value objects shared by every aggregate of the
// warehouse model.
//
// The package includes:
//   - Location: a warehouse storage slot (warehouse, zone, aisle, shelf)
//   - Actor: the opaque identity recorded for audit on every write
//   - Dimensions: carton measurements in centimetres, backed by shopspring/decimal
//   - FoldASCII, Initials, Fragment: NFKD based helpers used to derive short codes
//     from free text (category names, donor names)
//
// All value objects carry a guard.ConstructorGuard; their zero value fails Validate.
package kernel
