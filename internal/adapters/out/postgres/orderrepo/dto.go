// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored across three tables: orders, order_lines and
// order_reservations.
package orderrepo

import (
	"wms/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Reference  string         `gorm:"type:varchar(64);not null;uniqueIndex:orders_reference_key"`
	Status     string         `gorm:"type:varchar(16);not null;index"`
	ShipmentID *uuid.UUID     `gorm:"type:uuid;index"`
	Lines      []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO keeps the line position so lines are read back in the order
// they were added.
type OrderLineDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Position     int              `gorm:"type:int;not null"`
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Quantity     int              `gorm:"type:int;not null;check:order_lines_quantity_check,quantity > 0"`
	Reserved     int              `gorm:"type:int;not null"`
	Prepared     int              `gorm:"type:int;not null;check:order_lines_covered_check,reserved + prepared <= quantity"`
	Reservations []ReservationDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

type ReservationDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID   uuid.UUID `gorm:"type:uuid;not null;index"`
	LotID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity int       `gorm:"type:int;not null;check:order_reservations_quantity_check,quantity > 0"`
}

func (ReservationDTO) TableName() string {
	return "order_reservations"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	lines := o.Lines()
	dto := OrderDTO{
		ID:         o.ID(),
		Reference:  o.Reference(),
		Status:     o.Status().String(),
		ShipmentID: o.ShipmentID(),
		Lines:      make([]OrderLineDTO, 0, len(lines)),
	}
	for i, l := range lines {
		line := OrderLineDTO{
			ID:        l.ID(),
			OrderID:   o.ID(),
			Position:  i,
			ProductID: l.ProductID(),
			Quantity:  l.Quantity(),
			Reserved:  l.Reserved(),
			Prepared:  l.Prepared(),
		}
		for _, res := range l.Reservations() {
			line.Reservations = append(line.Reservations, ReservationDTO{
				ID:       res.ID(),
				LineID:   l.ID(),
				LotID:    res.LotID(),
				Quantity: res.Quantity(),
			})
		}
		dto.Lines = append(dto.Lines, line)
	}
	return dto
}

// toDomain rebuilds the aggregate with RestoreOrder, which re-checks the
// line invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		reservations := make([]*order.Reservation, 0, len(l.Reservations))
		for _, res := range l.Reservations {
			reservations = append(reservations, order.RestoreReservation(res.ID, res.LotID, res.Quantity))
		}
		line, lineErr := order.RestoreLine(l.ID, l.ProductID, l.Quantity, l.Reserved, l.Prepared, reservations)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(dto.ID, dto.Reference, status, dto.ShipmentID, lines)
}
