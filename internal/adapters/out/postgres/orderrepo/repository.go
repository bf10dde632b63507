package orderrepo

import (
	"context"

	"wms/internal/adapters/out/postgres/pgerr"
	"wms/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id uuid.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and reservations.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row, upserts its lines and replaces the
// reservations of every line.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Omit(clause.Associations).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	lineIDs := make([]uuid.UUID, 0, len(dto.Lines))
	for i := range dto.Lines {
		line := dto.Lines[i]
		lineIDs = append(lineIDs, line.ID)
		err := db.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"position", "quantity", "reserved", "prepared"}),
			}).
			Create(&line).Error
		if err != nil {
			return err
		}
	}

	if err := r.replaceReservations(db, lineIDs, dto.Lines); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) replaceReservations(db *gorm.DB, lineIDs []uuid.UUID, lines []OrderLineDTO) error {
	if len(lineIDs) == 0 {
		return nil
	}
	if err := db.Where("line_id IN ?", lineIDs).Delete(&ReservationDTO{}).Error; err != nil {
		return err
	}

	reservations := make([]ReservationDTO, 0)
	for _, line := range lines {
		reservations = append(reservations, line.Reservations...)
	}
	if len(reservations) == 0 {
		return nil
	}
	return db.Create(&reservations).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id, false)
}

// GetForUpdate locks the order row, its lines and its reservations.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id, true)
}

// GetByLineForUpdate locks the order owning lineID.
func (r *GormOrderRepository) GetByLineForUpdate(ctx context.Context, lineID uuid.UUID) (*order.Order, error) {
	var line OrderLineDTO
	if err := r.db.WithContext(ctx).Select("order_id").First(&line, "id = ?", lineID).Error; err != nil {
		return nil, pgerr.NotFound(err, "order line", lineID)
	}
	return r.GetForUpdate(ctx, line.OrderID)
}

func (r *GormOrderRepository) get(db *gorm.DB, id uuid.UUID, lock bool) (*order.Order, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if lock {
			return db.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		return db
	}

	var dto OrderDTO
	err := scope(db).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return scope(db).Order("position")
		}).
		Preload("Lines.Reservations", func(db *gorm.DB) *gorm.DB {
			return scope(db).Order("id")
		}).
		First(&dto, "id = ?", id).Error
	if err != nil {
		return nil, pgerr.NotFound(err, "order", id)
	}

	return toDomain(dto)
}
