// Package carton provides the Carton aggregate: a physical shipping container
// owning the lot quantities packed into it.
//
// The package includes:
//   - Carton and Item: the container and its per-lot contents
//   - Status: the draft -> picking -> packed -> assigned -> labeled -> shipped
//     lifecycle with an explicit transition table
//   - Code: the generated "TT-YYYYMMDD-N" code format and its sequence scan
//   - CodeOrigin: whether a code was generated or typed by hand
//   - Format: the carton models the packing planner sizes bins against
//   - StatusEvent: the audit trail written on every status change
package carton
