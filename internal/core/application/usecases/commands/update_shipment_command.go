package commands

import (
	"errors"

	"wms/internal/core/domain/model/shipment"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// UpdateShipmentCommand advances a shipment along its outbound lifecycle
// and/or flags it as disputed. A disputed shipment is locked for packing.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID uuid.UUID
	status     *shipment.Status
	disputed   *bool

	guard guard.ConstructorGuard
}

func NewUpdateShipmentCommand(shipmentID uuid.UUID, status *shipment.Status, disputed *bool) (UpdateShipmentCommand, error) {
	var idErr, statusErr, emptyErr error
	if shipmentID == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("shipment id")
	}
	if status != nil {
		statusErr = status.Validate()
	}
	if status == nil && disputed == nil {
		emptyErr = errs.NewValueIsRequiredError("status or disputed")
	}
	if err := errors.Join(idErr, statusErr, emptyErr); err != nil {
		return UpdateShipmentCommand{}, err
	}

	return UpdateShipmentCommand{
		shipmentID: shipmentID,
		status:     status,
		disputed:   disputed,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) ShipmentID() uuid.UUID    { return c.shipmentID }
func (c UpdateShipmentCommand) Status() *shipment.Status { return c.status }
func (c UpdateShipmentCommand) Disputed() *bool          { return c.disputed }
