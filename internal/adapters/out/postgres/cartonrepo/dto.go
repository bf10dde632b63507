// Package cartonrepo persists cartons, their items, their status history and
// the carton formats.
package cartonrepo

import (
	"time"

	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartonDTO struct {
	ID             uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Code           string                 `gorm:"type:varchar(64);not null;uniqueIndex:cartons_code_key"`
	Origin         string                 `gorm:"type:varchar(16);not null"`
	Status         string                 `gorm:"type:varchar(16);not null;index"`
	ShipmentID     *uuid.UUID             `gorm:"type:uuid;index"`
	Location       *string                `gorm:"type:varchar(64)"`
	Dimensions     DimensionsDTO          `gorm:"embedded;embeddedPrefix:dim_"`
	PreparedByID   uuid.UUID              `gorm:"type:uuid;not null"`
	PreparedByName string                 `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time              `gorm:"not null"`
	Items          []CartonItemDTO        `gorm:"foreignKey:CartonID;constraint:OnDelete:CASCADE"`
	Events         []CartonStatusEventDTO `gorm:"foreignKey:CartonID;constraint:OnDelete:CASCADE"`
}

func (CartonDTO) TableName() string {
	return "cartons"
}

// DimensionsDTO is embedded in cartons and carton formats. A carton that was
// never measured stores NULLs.
type DimensionsDTO struct {
	Length decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Width  decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Height decimal.NullDecimal `gorm:"type:numeric(10,2)"`
}

type CartonItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartonID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LotID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"type:int;not null;check:carton_items_quantity_check,quantity > 0"`
}

func (CartonItemDTO) TableName() string {
	return "carton_items"
}

// CartonStatusEventDTO is one row of the carton status history. Seq keeps
// the write order of events recorded within the same instant.
type CartonStatusEventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int64     `gorm:"autoIncrement;not null"`
	CartonID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Previous  string    `gorm:"type:varchar(16);not null"`
	Next      string    `gorm:"type:varchar(16);not null"`
	Reason    string    `gorm:"type:text;not null"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	ActorName string    `gorm:"type:varchar(255);not null"`
	At        time.Time `gorm:"not null"`
}

func (CartonStatusEventDTO) TableName() string {
	return "carton_status_events"
}

type CartonFormatDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(128);not null;uniqueIndex:carton_formats_name_key"`
	Length     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Width      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Height     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	MaxWeightG int             `gorm:"type:int;not null"`
	IsDefault  bool            `gorm:"not null"`
}

func (CartonFormatDTO) TableName() string {
	return "carton_formats"
}

// fromDomain maps the carton row and its items. Status events are written
// separately since they are drained from the aggregate.
func fromDomain(c *carton.Carton) CartonDTO {
	dto := CartonDTO{
		ID:             c.ID(),
		Code:           c.Code(),
		Origin:         c.Origin().String(),
		Status:         c.Status().String(),
		ShipmentID:     c.ShipmentID(),
		PreparedByID:   c.PreparedBy().ID(),
		PreparedByName: c.PreparedBy().Name(),
		CreatedAt:      c.CreatedAt(),
	}
	if l := c.Location(); l != nil {
		s := l.String()
		dto.Location = &s
	}
	if d := c.Dimensions(); d != nil {
		dto.Dimensions = DimensionsDTO{
			Length: decimal.NewNullDecimal(d.Length()),
			Width:  decimal.NewNullDecimal(d.Width()),
			Height: decimal.NewNullDecimal(d.Height()),
		}
	}

	items := c.Items()
	dto.Items = make([]CartonItemDTO, 0, len(items))
	for _, it := range items {
		dto.Items = append(dto.Items, CartonItemDTO{
			ID:        it.ID(),
			CartonID:  c.ID(),
			LotID:     it.LotID(),
			ProductID: it.ProductID(),
			Quantity:  it.Quantity(),
		})
	}
	return dto
}

func toDomain(dto CartonDTO) (*carton.Carton, error) {
	status, err := carton.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Location != nil {
		l, locErr := kernel.ParseLocation(*dto.Location)
		if locErr != nil {
			return nil, locErr
		}
		location = &l
	}

	var dimensions *kernel.Dimensions
	if d := dto.Dimensions; d.Length.Valid && d.Width.Valid && d.Height.Valid {
		dims, dimErr := kernel.NewDimensions(d.Length.Decimal, d.Width.Decimal, d.Height.Decimal)
		if dimErr != nil {
			return nil, dimErr
		}
		dimensions = &dims
	}

	items := make([]*carton.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, carton.RestoreItem(it.ID, it.LotID, it.ProductID, it.Quantity))
	}

	return carton.RestoreCarton(dto.ID, dto.Code, parseOrigin(dto.Origin), status, dto.ShipmentID, location,
		dimensions, kernel.RestoreActor(dto.PreparedByID, dto.PreparedByName), dto.CreatedAt, items)
}

func parseOrigin(code string) carton.CodeOrigin {
	if code == carton.CodeManual.String() {
		return carton.CodeManual
	}
	return carton.CodeGenerated
}

func eventFromDomain(e carton.StatusEvent) CartonStatusEventDTO {
	return CartonStatusEventDTO{
		ID:        e.ID,
		CartonID:  e.CartonID,
		Previous:  e.Previous.String(),
		Next:      e.Next.String(),
		Reason:    e.Reason,
		ActorID:   e.Actor.ID(),
		ActorName: e.Actor.Name(),
		At:        e.At,
	}
}

func eventToDomain(dto CartonStatusEventDTO) (carton.StatusEvent, error) {
	previous, err := carton.ParseStatus(dto.Previous)
	if err != nil {
		return carton.StatusEvent{}, err
	}
	next, err := carton.ParseStatus(dto.Next)
	if err != nil {
		return carton.StatusEvent{}, err
	}
	return carton.StatusEvent{
		ID:       dto.ID,
		CartonID: dto.CartonID,
		Previous: previous,
		Next:     next,
		Reason:   dto.Reason,
		Actor:    kernel.RestoreActor(dto.ActorID, dto.ActorName),
		At:       dto.At,
	}, nil
}

func formatFromDomain(f *carton.Format) CartonFormatDTO {
	return CartonFormatDTO{
		ID:         f.ID(),
		Name:       f.Name(),
		Length:     f.Dimensions().Length(),
		Width:      f.Dimensions().Width(),
		Height:     f.Dimensions().Height(),
		MaxWeightG: f.MaxWeightG(),
		IsDefault:  f.IsDefault(),
	}
}

func formatToDomain(dto CartonFormatDTO) (*carton.Format, error) {
	dims, err := kernel.NewDimensions(dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}
	return carton.NewFormat(dto.ID, dto.Name, dims, dto.MaxWeightG, dto.IsDefault)
}
