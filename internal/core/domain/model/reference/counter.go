package reference

import (
	"errors"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"
)

var ErrCounterIsNotConstructed = errors.New("Counter must be created via NewCounter constructor")

// Counter holds the last number issued in a scope.
type Counter struct {
	scope      Scope
	lastNumber int
	guard      guard.ConstructorGuard
}

func NewCounter(scope Scope, lastNumber int) (*Counter, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if lastNumber < 0 {
		return nil, errs.NewValueIsOutOfRangeError("last number", lastNumber, 0, "unbounded")
	}
	return &Counter{
		scope:      scope,
		lastNumber: lastNumber,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c *Counter) Validate() error {
	if c == nil {
		return ErrCounterIsNotConstructed
	}
	return c.guard.Validate(ErrCounterIsNotConstructed)
}

func (c *Counter) Scope() Scope     { return c.scope }
func (c *Counter) LastNumber() int { return c.lastNumber }

// Raise lifts the counter to floor when it lags behind, e.g. after references
// were issued without it.
func (c *Counter) Raise(floor int) {
	if floor > c.lastNumber {
		c.lastNumber = floor
	}
}

// Next advances the counter and returns the new number.
func (c *Counter) Next() int {
	c.lastNumber++
	return c.lastNumber
}
