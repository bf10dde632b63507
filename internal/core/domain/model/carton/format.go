package carton

import (
	"errors"
	"fmt"
	"strings"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Format is a carton model the packing planner sizes bins against.
type Format struct {
	id         uuid.UUID
	name       string
	dimensions kernel.Dimensions
	maxWeightG int
	isDefault  bool
}

func NewFormat(id uuid.UUID, name string, dimensions kernel.Dimensions, maxWeightG int, isDefault bool) (*Format, error) {
	name = strings.TrimSpace(name)
	var nameErr, weightErr, idErr error
	if id == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if maxWeightG <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause("max weight", fmt.Errorf("%d is not greater than 0", maxWeightG))
	}
	if err := errors.Join(idErr, nameErr, weightErr, dimensions.Validate()); err != nil {
		return nil, err
	}
	return &Format{
		id:         id,
		name:       name,
		dimensions: dimensions,
		maxWeightG: maxWeightG,
		isDefault:  isDefault,
	}, nil
}

func (f *Format) ID() uuid.UUID                 { return f.id }
func (f *Format) Name() string                  { return f.name }
func (f *Format) Dimensions() kernel.Dimensions { return f.dimensions }
func (f *Format) MaxWeightG() int               { return f.maxWeightG }
func (f *Format) IsDefault() bool               { return f.isDefault }

// VolumeCm3 is the inner volume available to items.
func (f *Format) VolumeCm3() decimal.Decimal {
	return f.dimensions.VolumeCm3()
}
