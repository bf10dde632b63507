// Package shipmentrepo persists outbound shipments.
package shipmentrepo

import (
	"context"
	"time"

	"wms/internal/adapters/out/postgres/pgerr"
	"wms/internal/core/domain/model/reference"
	"wms/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShipmentDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference string     `gorm:"type:varchar(16);not null;uniqueIndex:shipments_reference_key"`
	Status    string     `gorm:"type:varchar(32);not null;index"`
	Disputed  bool       `gorm:"not null"`
	ReadyAt   *time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:        s.ID(),
		Reference: s.Reference(),
		Status:    s.Status().String(),
		Disputed:  s.IsDisputed(),
		ReadyAt:   s.ReadyAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return shipment.RestoreShipment(dto.ID, dto.Reference, status, dto.Disputed, dto.ReadyAt)
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id uuid.UUID, aggregate any)
}

type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the shipment inside a savepoint; a reference already issued
// yields errs.DuplicateKeyError.
func (r *GormShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	if err := pgerr.Savepoint(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	}); err != nil {
		return err
	}

	r.tracker.TrackAggregate(s.ID(), s)
	return nil
}

func (r *GormShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(s.ID(), s)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShipmentRepository) get(db *gorm.DB, id uuid.UUID) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		return nil, pgerr.NotFound(err, "shipment", id)
	}
	return toDomain(dto)
}

func (r *GormShipmentRepository) ReferencesForYear(ctx context.Context, year int) ([]string, error) {
	refs := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("reference LIKE ? AND char_length(reference) = 6", reference.YearPrefix(year)+"%").
		Pluck("reference", &refs).Error
	return refs, err
}
