// Package stockrepo persists the stock ledger: products, lots, the movement
// journal and receipts.
package stockrepo

import (
	"time"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SKU               string          `gorm:"type:varchar(64);not null;uniqueIndex:products_sku_key"`
	Name              string          `gorm:"type:varchar(255);not null"`
	RootCategory      string          `gorm:"type:varchar(255);not null"`
	WeightG           int             `gorm:"type:int;not null"`
	VolumeCm3         decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	DefaultLocation   *string         `gorm:"type:varchar(64)"`
	QuarantineDefault bool            `gorm:"not null"`
	StorageConditions string          `gorm:"type:varchar(255);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// ProductKitItemDTO is one component of a kit. Position keeps the declared
// order.
type ProductKitItemDTO struct {
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ComponentID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Quantity    int       `gorm:"type:int;not null;check:product_kit_items_quantity_check,quantity > 0"`
	Position    int       `gorm:"type:int;not null"`
}

func (ProductKitItemDTO) TableName() string {
	return "product_kit_items"
}

// LotDTO stores a lot. Status holds the lower-case lot status code; the
// composite index serves the FEFO candidate scan.
type LotDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID         uuid.UUID  `gorm:"type:uuid;not null;index:lots_product_status_idx,priority:1"`
	LotCode           string     `gorm:"type:varchar(64);not null"`
	OnHand            int        `gorm:"type:int;not null;check:lots_on_hand_check,on_hand >= 0"`
	Reserved          int        `gorm:"type:int;not null;check:lots_reserved_check,reserved >= 0 AND reserved <= on_hand"`
	Status            string     `gorm:"type:varchar(16);not null;index:lots_product_status_idx,priority:2"`
	ExpiresOn         *time.Time `gorm:"type:date"`
	ReceivedOn        *time.Time `gorm:"type:date"`
	Location          string     `gorm:"type:varchar(64);not null"`
	ReceiptID         *uuid.UUID `gorm:"type:uuid;index"`
	StorageConditions string     `gorm:"type:varchar(255);not null"`
}

func (LotDTO) TableName() string {
	return "lots"
}

// MovementDTO is one journal entry. Seq orders entries written at the same
// instant.
type MovementDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq          int64      `gorm:"autoIncrement;not null"`
	Type         string     `gorm:"type:varchar(16);not null"`
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	LotID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity     int        `gorm:"type:int;not null"`
	FromLocation *string    `gorm:"type:varchar(64)"`
	ToLocation   *string    `gorm:"type:varchar(64)"`
	CartonID     *uuid.UUID `gorm:"type:uuid;index"`
	ShipmentID   *uuid.UUID `gorm:"type:uuid"`
	OrderLineID  *uuid.UUID `gorm:"type:uuid"`
	ReasonCode   string     `gorm:"type:varchar(64);not null"`
	ReasonNotes  string     `gorm:"type:text;not null"`
	ActorID      uuid.UUID  `gorm:"type:uuid;not null"`
	ActorName    string     `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time  `gorm:"not null;index"`
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

type ReceiptDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference  string     `gorm:"type:varchar(32);not null;uniqueIndex:receipts_reference_key"`
	DonorID    *uuid.UUID `gorm:"type:uuid;index"`
	DonorName  string     `gorm:"type:varchar(255);not null"`
	ReceivedOn time.Time  `gorm:"type:date;not null"`
}

func (ReceiptDTO) TableName() string {
	return "receipts"
}

func productFromDomain(p *stock.Product) ProductDTO {
	return ProductDTO{
		ID:                p.ID(),
		SKU:               p.SKU(),
		Name:              p.Name(),
		RootCategory:      p.RootCategory(),
		WeightG:           p.WeightG(),
		VolumeCm3:         p.VolumeCm3(),
		DefaultLocation:   locationToColumn(p.DefaultLocation()),
		QuarantineDefault: p.QuarantineDefault(),
		StorageConditions: p.StorageConditions(),
	}
}

func kitItemsFromDomain(p *stock.Product) []ProductKitItemDTO {
	kit := p.KitComponents()
	items := make([]ProductKitItemDTO, 0, len(kit))
	for i, c := range kit {
		items = append(items, ProductKitItemDTO{
			ProductID:   p.ID(),
			ComponentID: c.ComponentID,
			Quantity:    c.Quantity,
			Position:    i,
		})
	}
	return items
}

// productToDomain expects items sorted by position.
func productToDomain(dto ProductDTO, items []ProductKitItemDTO) (*stock.Product, error) {
	location, err := locationFromColumn(dto.DefaultLocation)
	if err != nil {
		return nil, err
	}
	p, err := stock.RestoreProduct(dto.ID, dto.SKU, dto.Name, dto.RootCategory, dto.WeightG, dto.VolumeCm3,
		location, dto.QuarantineDefault, dto.StorageConditions)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return p, nil
	}

	kit := make([]stock.KitComponent, 0, len(items))
	for _, item := range items {
		kit = append(kit, stock.KitComponent{ComponentID: item.ComponentID, Quantity: item.Quantity})
	}
	if err = p.SetKitComponents(kit); err != nil {
		return nil, err
	}
	return p, nil
}

func lotFromDomain(l *stock.Lot) LotDTO {
	return LotDTO{
		ID:                l.ID(),
		ProductID:         l.ProductID(),
		LotCode:           l.LotCode(),
		OnHand:            l.OnHand(),
		Reserved:          l.Reserved(),
		Status:            l.Status().String(),
		ExpiresOn:         l.ExpiresOn(),
		ReceivedOn:        l.ReceivedOn(),
		Location:          l.Location().String(),
		ReceiptID:         l.ReceiptID(),
		StorageConditions: l.StorageConditions(),
	}
}

func lotToDomain(dto LotDTO) (*stock.Lot, error) {
	status, err := stock.ParseLotStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	location, err := kernel.ParseLocation(dto.Location)
	if err != nil {
		return nil, err
	}
	return stock.RestoreLot(dto.ID, dto.ProductID, dto.LotCode, dto.OnHand, dto.Reserved, status,
		dto.ExpiresOn, dto.ReceivedOn, location, dto.ReceiptID, dto.StorageConditions)
}

func movementFromDomain(m *stock.Movement) MovementDTO {
	mc := m.Context()
	return MovementDTO{
		ID:           m.ID(),
		Type:         m.Type().String(),
		ProductID:    m.ProductID(),
		LotID:        m.LotID(),
		Quantity:     m.Quantity(),
		FromLocation: locationToColumn(m.FromLocation()),
		ToLocation:   locationToColumn(m.ToLocation()),
		CartonID:     mc.CartonID,
		ShipmentID:   mc.ShipmentID,
		OrderLineID:  mc.OrderLineID,
		ReasonCode:   mc.ReasonCode,
		ReasonNotes:  mc.ReasonNotes,
		ActorID:      m.Actor().ID(),
		ActorName:    m.Actor().Name(),
		CreatedAt:    m.CreatedAt(),
	}
}

func movementToDomain(dto MovementDTO) (*stock.Movement, error) {
	movementType, err := stock.ParseMovementType(dto.Type)
	if err != nil {
		return nil, err
	}
	from, err := locationFromColumn(dto.FromLocation)
	if err != nil {
		return nil, err
	}
	to, err := locationFromColumn(dto.ToLocation)
	if err != nil {
		return nil, err
	}
	mc := stock.MovementContext{
		CartonID:    dto.CartonID,
		ShipmentID:  dto.ShipmentID,
		OrderLineID: dto.OrderLineID,
		ReasonCode:  dto.ReasonCode,
		ReasonNotes: dto.ReasonNotes,
	}
	return stock.RestoreMovement(dto.ID, movementType, dto.ProductID, dto.LotID, dto.Quantity, from, to, mc,
		kernel.RestoreActor(dto.ActorID, dto.ActorName), dto.CreatedAt), nil
}

func receiptFromDomain(r *stock.Receipt) ReceiptDTO {
	dto := ReceiptDTO{
		ID:         r.ID(),
		Reference:  r.Reference(),
		ReceivedOn: r.ReceivedOn(),
	}
	if donor := r.Donor(); donor != nil {
		id := donor.ID
		dto.DonorID = &id
		dto.DonorName = donor.Name
	}
	return dto
}

func receiptToDomain(dto ReceiptDTO) (*stock.Receipt, error) {
	var donor *stock.Donor
	if dto.DonorID != nil {
		donor = &stock.Donor{ID: *dto.DonorID, Name: dto.DonorName}
	}
	return stock.NewReceipt(dto.ID, dto.Reference, donor, dto.ReceivedOn)
}

func locationToColumn(l *kernel.Location) *string {
	if l == nil {
		return nil
	}
	s := l.String()
	return &s
}

func locationFromColumn(s *string) (*kernel.Location, error) {
	if s == nil {
		return nil, nil //nolint:nilnil // no location stored
	}
	l, err := kernel.ParseLocation(*s)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
