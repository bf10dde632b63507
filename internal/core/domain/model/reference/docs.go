// Package reference formats, parses and counts the human-facing references
// issued by the warehouse.
//
// Receipt references read YY-SS-DDD-CC: two-digit year, yearly receipt
// sequence, three-letter donor code and per-donor yearly count. Shipment
// references read YYNNNN. Each sequence is backed by a Counter row that is
// locked while a reference is issued; the next number is always above both the
// counter and every reference already issued in the same scope.
package reference
