package http

import (
	"time"

	"wms/internal/core/application/engine"
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/core/domain/model/stock"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func parseLocation(s *string) (*kernel.Location, error) {
	if s == nil {
		return nil, nil //nolint:nilnil
	}
	location, err := kernel.ParseLocation(*s)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func locationString(l *kernel.Location) *string {
	if l == nil {
		return nil
	}
	s := l.String()
	return &s
}

func lotFromDomain(l *stock.Lot, receipt *stock.Receipt) Lot {
	productID := l.ProductID()
	lot := Lot{
		ID:                l.ID(),
		ProductID:         &productID,
		LotCode:           l.LotCode(),
		Status:            l.Status().String(),
		OnHand:            l.OnHand(),
		Reserved:          l.Reserved(),
		ExpiresOn:         toDate(l.ExpiresOn()),
		ReceivedOn:        toDate(l.ReceivedOn()),
		Location:          l.Location().String(),
		StorageConditions: l.StorageConditions(),
		ReceiptID:         l.ReceiptID(),
	}
	if receipt != nil {
		lot.ReceiptReference = receipt.Reference()
	}
	return lot
}

func cartonFromDomain(c *carton.Carton) Carton {
	items := make([]CartonItem, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartonItem{
			LotID:     item.LotID(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		})
	}
	return Carton{
		ID:            c.ID(),
		Code:          c.Code(),
		Origin:        c.Origin().String(),
		Status:        c.Status().String(),
		ShipmentID:    c.ShipmentID(),
		Location:      locationString(c.Location()),
		TotalQuantity: c.TotalQuantity(),
		Items:         items,
	}
}

func orderFromDomain(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLine{
			ID:        line.ID(),
			ProductID: line.ProductID(),
			Quantity:  line.Quantity(),
			Reserved:  line.Reserved(),
			Prepared:  line.Prepared(),
		})
	}
	return Order{
		ID:         o.ID(),
		Reference:  o.Reference(),
		Status:     o.Status().String(),
		ShipmentID: o.ShipmentID(),
		Lines:      lines,
	}
}

func shipmentFromDomain(s *shipment.Shipment) Shipment {
	return Shipment{
		ID:        s.ID(),
		Reference: s.Reference(),
		Status:    s.Status().String(),
		Disputed:  s.IsDisputed(),
		ReadyAt:   s.ReadyAt(),
	}
}

func consumedFromDomain(consumed []engine.Consumed) []Consumed {
	out := make([]Consumed, 0, len(consumed))
	for _, c := range consumed {
		out = append(out, Consumed{LotID: c.Lot.ID(), Quantity: c.Quantity})
	}
	return out
}
