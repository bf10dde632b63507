package ports

import (
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/services"
)

// PackingPlanner splits product quantities into cartons of one format. It
// returns blocking errors and non-blocking warnings as operator messages;
// bins are only meaningful when errors is empty.
type PackingPlanner interface {
	Plan(lines []services.ProductQuantity, format *carton.Format) (bins []services.Bin, errors []string, warnings []string)
}
