package memory

import (
	"time"

	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/order"
	"wms/internal/core/domain/model/reference"
	"wms/internal/core/domain/model/shipment"
	"wms/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Records are plain values; aggregates are rebuilt from them on every read
// so that callers never share state with the store.

type productRecord struct {
	id                uuid.UUID
	sku               string
	name              string
	rootCategory      string
	weightG           int
	volumeCm3         decimal.Decimal
	defaultLocation   *kernel.Location
	quarantineDefault bool
	storageConditions string
	kit               []stock.KitComponent
}

func productFromDomain(p *stock.Product) productRecord {
	return productRecord{
		id:                p.ID(),
		sku:               p.SKU(),
		name:              p.Name(),
		rootCategory:      p.RootCategory(),
		weightG:           p.WeightG(),
		volumeCm3:         p.VolumeCm3(),
		defaultLocation:   p.DefaultLocation(),
		quarantineDefault: p.QuarantineDefault(),
		storageConditions: p.StorageConditions(),
		kit:               p.KitComponents(),
	}
}

func (r productRecord) toDomain() (*stock.Product, error) {
	p, err := stock.RestoreProduct(r.id, r.sku, r.name, r.rootCategory, r.weightG, r.volumeCm3,
		r.defaultLocation, r.quarantineDefault, r.storageConditions)
	if err != nil {
		return nil, err
	}
	if err = p.SetKitComponents(r.kit); err != nil {
		return nil, err
	}
	return p, nil
}

type lotRecord struct {
	id                uuid.UUID
	productID         uuid.UUID
	lotCode           string
	onHand            int
	reserved          int
	status            stock.LotStatus
	expiresOn         *time.Time
	receivedOn        *time.Time
	location          kernel.Location
	receiptID         *uuid.UUID
	storageConditions string
}

func lotFromDomain(l *stock.Lot) lotRecord {
	return lotRecord{
		id:                l.ID(),
		productID:         l.ProductID(),
		lotCode:           l.LotCode(),
		onHand:            l.OnHand(),
		reserved:          l.Reserved(),
		status:            l.Status(),
		expiresOn:         l.ExpiresOn(),
		receivedOn:        l.ReceivedOn(),
		location:          l.Location(),
		receiptID:         l.ReceiptID(),
		storageConditions: l.StorageConditions(),
	}
}

func (r lotRecord) toDomain() (*stock.Lot, error) {
	return stock.RestoreLot(r.id, r.productID, r.lotCode, r.onHand, r.reserved, r.status,
		r.expiresOn, r.receivedOn, r.location, r.receiptID, r.storageConditions)
}

type itemRecord struct {
	id        uuid.UUID
	lotID     uuid.UUID
	productID uuid.UUID
	quantity  int
}

type cartonRecord struct {
	id         uuid.UUID
	code       string
	origin     carton.CodeOrigin
	status     carton.Status
	shipmentID *uuid.UUID
	location   *kernel.Location
	dimensions *kernel.Dimensions
	preparedBy kernel.Actor
	createdAt  time.Time
	items      []itemRecord
}

func cartonFromDomain(c *carton.Carton) cartonRecord {
	items := c.Items()
	rec := cartonRecord{
		id:         c.ID(),
		code:       c.Code(),
		origin:     c.Origin(),
		status:     c.Status(),
		shipmentID: c.ShipmentID(),
		location:   c.Location(),
		dimensions: c.Dimensions(),
		preparedBy: c.PreparedBy(),
		createdAt:  c.CreatedAt(),
		items:      make([]itemRecord, 0, len(items)),
	}
	for _, it := range items {
		rec.items = append(rec.items, itemRecord{id: it.ID(), lotID: it.LotID(), productID: it.ProductID(), quantity: it.Quantity()})
	}
	return rec
}

func (r cartonRecord) toDomain() (*carton.Carton, error) {
	items := make([]*carton.Item, 0, len(r.items))
	for _, it := range r.items {
		items = append(items, carton.RestoreItem(it.id, it.lotID, it.productID, it.quantity))
	}
	return carton.RestoreCarton(r.id, r.code, r.origin, r.status, r.shipmentID, r.location,
		r.dimensions, r.preparedBy, r.createdAt, items)
}

func (r cartonRecord) clone() cartonRecord {
	r.items = append([]itemRecord(nil), r.items...)
	return r
}

type shipmentRecord struct {
	id        uuid.UUID
	reference string
	status    shipment.Status
	disputed  bool
	readyAt   *time.Time
}

func shipmentFromDomain(s *shipment.Shipment) shipmentRecord {
	return shipmentRecord{
		id:        s.ID(),
		reference: s.Reference(),
		status:    s.Status(),
		disputed:  s.IsDisputed(),
		readyAt:   s.ReadyAt(),
	}
}

func (r shipmentRecord) toDomain() (*shipment.Shipment, error) {
	return shipment.RestoreShipment(r.id, r.reference, r.status, r.disputed, r.readyAt)
}

type reservationRecord struct {
	id       uuid.UUID
	lotID    uuid.UUID
	quantity int
}

type lineRecord struct {
	id           uuid.UUID
	productID    uuid.UUID
	quantity     int
	reserved     int
	prepared     int
	reservations []reservationRecord
}

type orderRecord struct {
	id         uuid.UUID
	reference  string
	status     order.Status
	shipmentID *uuid.UUID
	lines      []lineRecord
}

func orderFromDomain(o *order.Order) orderRecord {
	lines := o.Lines()
	rec := orderRecord{
		id:         o.ID(),
		reference:  o.Reference(),
		status:     o.Status(),
		shipmentID: o.ShipmentID(),
		lines:      make([]lineRecord, 0, len(lines)),
	}
	for _, l := range lines {
		lr := lineRecord{
			id:        l.ID(),
			productID: l.ProductID(),
			quantity:  l.Quantity(),
			reserved:  l.Reserved(),
			prepared:  l.Prepared(),
		}
		for _, res := range l.Reservations() {
			lr.reservations = append(lr.reservations, reservationRecord{id: res.ID(), lotID: res.LotID(), quantity: res.Quantity()})
		}
		rec.lines = append(rec.lines, lr)
	}
	return rec
}

func (r orderRecord) toDomain() (*order.Order, error) {
	lines := make([]*order.Line, 0, len(r.lines))
	for _, lr := range r.lines {
		reservations := make([]*order.Reservation, 0, len(lr.reservations))
		for _, res := range lr.reservations {
			reservations = append(reservations, order.RestoreReservation(res.id, res.lotID, res.quantity))
		}
		line, err := order.RestoreLine(lr.id, lr.productID, lr.quantity, lr.reserved, lr.prepared, reservations)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return order.RestoreOrder(r.id, r.reference, r.status, r.shipmentID, lines)
}

func (r orderRecord) clone() orderRecord {
	lines := make([]lineRecord, len(r.lines))
	for i, l := range r.lines {
		l.reservations = append([]reservationRecord(nil), l.reservations...)
		lines[i] = l
	}
	r.lines = lines
	return r
}

type counterRecord struct {
	scope      reference.Scope
	lastNumber int
}
