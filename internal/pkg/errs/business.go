package errs

import (
	"errors"
	"fmt"
)

// Business rule sentinels. They are terminal for the call that produced them
// and are never retried.
var (
	ErrInvalidQuantity         = errors.New("invalid quantity")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrReservedStockConflict   = errors.New("reserved stock conflict")
	ErrSameLocation            = errors.New("same location")
	ErrCartonAlreadyShipped    = errors.New("carton already shipped")
	ErrShipmentLocked          = errors.New("shipment locked")
	ErrCartonShipmentConflict  = errors.New("carton shipment conflict")
	ErrEmptyCarton             = errors.New("empty carton")
	ErrOrderNotEditable        = errors.New("order not editable")
	ErrOrderNotReserved        = errors.New("order not reserved")
	ErrInsufficientReservation = errors.New("insufficient reservation")
	ErrMissingCartonFormat     = errors.New("missing carton format")
	ErrPackingError            = errors.New("packing error")
	ErrProductNotOnOrder       = errors.New("product not on order")
	ErrInvalidTransition       = errors.New("invalid status transition")
)

// BusinessRuleError carries an operator-facing message next to the sentinel
// that classifies it. errors.Is matches the sentinel.
type BusinessRuleError struct {
	Sentinel error
	Message  string
}

func NewBusinessRuleError(sentinel error, format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{
		Sentinel: sentinel,
		Message:  sanitize(fmt.Sprintf(format, args...)),
	}
}

func (e *BusinessRuleError) Error() string {
	if e.Message == "" {
		return e.Sentinel.Error()
	}
	return fmt.Sprintf("%s: %s", e.Sentinel, e.Message)
}

func (e *BusinessRuleError) Unwrap() error {
	return e.Sentinel
}

func NewInvalidQuantityError(quantity int) *BusinessRuleError {
	return NewBusinessRuleError(ErrInvalidQuantity, "%d must be greater than 0", quantity)
}

func NewInsufficientStockError(available int) *BusinessRuleError {
	return NewBusinessRuleError(ErrInsufficientStock, "%d available", available)
}

func NewInsufficientStockForProductError(sku string, needed, available int) *BusinessRuleError {
	return NewBusinessRuleError(ErrInsufficientStock, "%s: %d needed, %d available", sku, needed, available)
}

func NewReservedStockConflictError(onHand, reserved int) *BusinessRuleError {
	return NewBusinessRuleError(ErrReservedStockConflict,
		"on hand would drop to %d below %d reserved", onHand, reserved)
}

func NewSameLocationError(location string) *BusinessRuleError {
	return NewBusinessRuleError(ErrSameLocation, "lot is already at %s", location)
}

func NewCartonAlreadyShippedError(code string) *BusinessRuleError {
	return NewBusinessRuleError(ErrCartonAlreadyShipped, "carton %s is shipped", code)
}

func NewShipmentLockedError(reference string) *BusinessRuleError {
	return NewBusinessRuleError(ErrShipmentLocked, "shipment %s can no longer be modified", reference)
}

func NewCartonShipmentConflictError(code string) *BusinessRuleError {
	return NewBusinessRuleError(ErrCartonShipmentConflict, "carton %s belongs to another shipment", code)
}

func NewEmptyCartonError(code string) *BusinessRuleError {
	return NewBusinessRuleError(ErrEmptyCarton, "carton %s has no items", code)
}

func NewOrderNotEditableError(reference, status string) *BusinessRuleError {
	return NewBusinessRuleError(ErrOrderNotEditable, "order %s is %s", reference, status)
}

func NewOrderNotReservedError(reference, status string) *BusinessRuleError {
	return NewBusinessRuleError(ErrOrderNotReserved, "order %s is %s", reference, status)
}

func NewInsufficientReservationError(requested, reserved int) *BusinessRuleError {
	return NewBusinessRuleError(ErrInsufficientReservation, "%d requested, %d reserved", requested, reserved)
}

func NewMissingCartonFormatError() *BusinessRuleError {
	return NewBusinessRuleError(ErrMissingCartonFormat, "no carton format configured")
}

func NewPackingError(reason string) *BusinessRuleError {
	return NewBusinessRuleError(ErrPackingError, "%s", reason)
}

func NewProductNotOnOrderError(sku string) *BusinessRuleError {
	return NewBusinessRuleError(ErrProductNotOnOrder, "%s", sku)
}

func NewInvalidTransitionError(entity, from, to string) *BusinessRuleError {
	return NewBusinessRuleError(ErrInvalidTransition, "%s cannot move from %s to %s", entity, from, to)
}
