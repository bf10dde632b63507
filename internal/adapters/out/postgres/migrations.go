package postgres

import (
	"wms/internal/adapters/out/postgres/cartonrepo"
	"wms/internal/adapters/out/postgres/orderrepo"
	"wms/internal/adapters/out/postgres/sequencerepo"
	"wms/internal/adapters/out/postgres/shipmentrepo"
	"wms/internal/adapters/out/postgres/stockrepo"

	"gorm.io/gorm"
)

// Models lists every table of the warehouse schema in dependency order.
func Models() []any {
	return []any{
		&stockrepo.ProductDTO{},
		&stockrepo.ProductKitItemDTO{},
		&stockrepo.ReceiptDTO{},
		&stockrepo.LotDTO{},
		&stockrepo.MovementDTO{},
		&shipmentrepo.ShipmentDTO{},
		&cartonrepo.CartonFormatDTO{},
		&cartonrepo.CartonDTO{},
		&cartonrepo.CartonItemDTO{},
		&cartonrepo.CartonStatusEventDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.ReservationDTO{},
		&sequencerepo.SequenceDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
