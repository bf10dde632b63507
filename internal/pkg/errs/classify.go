package errs

import "errors"

// Class groups errors by how a caller should react to them.
type Class int

const (
	// ClassUnknown is an infrastructure failure or an unclassified error.
	ClassUnknown Class = iota
	// ClassInvalid means the request itself is wrong and will fail again as is.
	ClassInvalid
	// ClassNotFound means a referenced object does not exist.
	ClassNotFound
	// ClassConflict means the request clashes with the current state.
	ClassConflict
)

type classified struct {
	sentinel error
	code     string
	class    Class
}

var classification = []classified{
	{ErrObjectNotFound, "not_found", ClassNotFound},
	{ErrValueIsRequired, "value_required", ClassInvalid},
	{ErrValueIsInvalid, "value_invalid", ClassInvalid},
	{ErrValueIsOutOfRange, "value_out_of_range", ClassInvalid},
	{ErrInvalidQuantity, "invalid_quantity", ClassInvalid},
	{ErrSameLocation, "same_location", ClassInvalid},
	{ErrMissingCartonFormat, "missing_carton_format", ClassInvalid},
	{ErrPackingError, "packing_error", ClassInvalid},
	{ErrProductNotOnOrder, "product_not_on_order", ClassInvalid},
	{ErrInsufficientStock, "insufficient_stock", ClassConflict},
	{ErrReservedStockConflict, "reserved_stock_conflict", ClassConflict},
	{ErrCartonAlreadyShipped, "carton_already_shipped", ClassConflict},
	{ErrShipmentLocked, "shipment_locked", ClassConflict},
	{ErrCartonShipmentConflict, "carton_shipment_conflict", ClassConflict},
	{ErrEmptyCarton, "empty_carton", ClassConflict},
	{ErrOrderNotEditable, "order_not_editable", ClassConflict},
	{ErrOrderNotReserved, "order_not_reserved", ClassConflict},
	{ErrInsufficientReservation, "insufficient_reservation", ClassConflict},
	{ErrInvalidTransition, "invalid_transition", ClassConflict},
	{ErrDuplicateKey, "duplicate_key", ClassConflict},
}

func lookup(err error) (classified, bool) {
	if err == nil {
		return classified{}, false
	}
	for _, c := range classification {
		if errors.Is(err, c.sentinel) {
			return c, true
		}
	}
	return classified{}, false
}

// Code returns a stable snake_case code for err, "internal" when err is not
// one of the package errors.
func Code(err error) string {
	if c, ok := lookup(err); ok {
		return c.code
	}
	return "internal"
}

// ClassOf reports the class of err. For joined errors a missing object
// outranks a bad value, which outranks a conflict.
func ClassOf(err error) Class {
	if c, ok := lookup(err); ok {
		return c.class
	}
	return ClassUnknown
}

// IsConflict reports whether err rejects the request because of the current
// state of stock, cartons, orders or shipments.
func IsConflict(err error) bool {
	return ClassOf(err) == ClassConflict
}
