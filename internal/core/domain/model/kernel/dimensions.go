package kernel

import (
	"errors"
	"fmt"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions")

// Dimensions are outer carton measurements in centimetres.
type Dimensions struct {
	length decimal.Decimal
	width  decimal.Decimal
	height decimal.Decimal
	guard  guard.ConstructorGuard
}

func NewDimensions(length, width, height decimal.Decimal) (Dimensions, error) {
	if err := errors.Join(
		positive("length", length),
		positive("width", width),
		positive("height", height),
	); err != nil {
		return Dimensions{}, err
	}
	return Dimensions{
		length: length,
		width:  width,
		height: height,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (d Dimensions) Length() decimal.Decimal { return d.length }
func (d Dimensions) Width() decimal.Decimal  { return d.width }
func (d Dimensions) Height() decimal.Decimal { return d.height }

// VolumeCm3 is length x width x height.
func (d Dimensions) VolumeCm3() decimal.Decimal {
	return d.length.Mul(d.width).Mul(d.height)
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%sx%sx%s cm", d.length, d.width, d.height)
}

func positive(name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not greater than 0", v))
	}
	return nil
}
