package commands

import (
	"strings"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartonTarget selects the carton a pack command fills: an existing carton by
// id, a carton by manual code (created when unknown) or, with neither, a new
// carton with a generated code. ShipmentID links the carton to a shipment.
type CartonTarget struct {
	CartonID   *uuid.UUID
	Code       string
	ShipmentID *uuid.UUID
	Location   *kernel.Location
}

func (t CartonTarget) validate() error {
	if t.Location != nil {
		return t.Location.Validate()
	}
	return nil
}

func (t CartonTarget) prepareInput(actor kernel.Actor) engine.PrepareInput {
	return engine.PrepareInput{
		CartonID:   t.CartonID,
		Code:       strings.TrimSpace(t.Code),
		ShipmentID: t.ShipmentID,
		Location:   t.Location,
		Actor:      actor,
	}
}
