package commands

import (
	"errors"
	"strings"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrCreateCartonFormatCommandIsNotConstructed = errors.New(
	"CreateCartonFormatCommand must be created via NewCreateCartonFormatCommand constructor",
)

// CreateCartonFormatCommand registers a carton size used by the packing
// planner and to fill in carton dimensions.
type CreateCartonFormatCommand struct { //nolint:recvcheck //using for validation
	formatID   uuid.UUID
	name       string
	dimensions kernel.Dimensions
	maxWeightG int
	isDefault  bool

	guard guard.ConstructorGuard
}

func NewCreateCartonFormatCommand(
	formatID uuid.UUID,
	name string,
	dimensions kernel.Dimensions,
	maxWeightG int,
	isDefault bool,
) (CreateCartonFormatCommand, error) {
	var idErr, nameErr error
	if formatID == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("format id")
	}
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(idErr, nameErr, dimensions.Validate()); err != nil {
		return CreateCartonFormatCommand{}, err
	}

	return CreateCartonFormatCommand{
		formatID:   formatID,
		name:       strings.TrimSpace(name),
		dimensions: dimensions,
		maxWeightG: maxWeightG,
		isDefault:  isDefault,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCartonFormatCommand) Validate() error {
	return c.guard.Validate(ErrCreateCartonFormatCommandIsNotConstructed)
}

func (c CreateCartonFormatCommand) FormatID() uuid.UUID           { return c.formatID }
func (c CreateCartonFormatCommand) Name() string                  { return c.name }
func (c CreateCartonFormatCommand) Dimensions() kernel.Dimensions { return c.dimensions }
func (c CreateCartonFormatCommand) MaxWeightG() int               { return c.maxWeightG }
func (c CreateCartonFormatCommand) IsDefault() bool               { return c.isDefault }
