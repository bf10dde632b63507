package cartonrepo

import (
	"context"
	"time"

	"wms/internal/adapters/out/postgres/pgerr"
	"wms/internal/core/domain/model/carton"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id uuid.UUID, aggregate any)
}

// GormCartonRepository implements CartonRepository using GORM. Inserts and
// updates run inside a savepoint so that a carton code collision leaves the
// surrounding transaction usable for another attempt.
type GormCartonRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormCartonRepository(db *gorm.DB, tracker aggregateTracker) *GormCartonRepository {
	return &GormCartonRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCartonRepository) Add(ctx context.Context, c *carton.Carton) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	err := pgerr.Savepoint(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return err
		}
		return r.writeChildren(tx, c, dto.Items)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

// Update writes the carton row first so that a code clash is detected
// before the pending status events are drained.
func (r *GormCartonRepository) Update(ctx context.Context, c *carton.Carton) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	err := pgerr.Savepoint(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&CartonDTO{}).Where("id = ?", dto.ID).
			Select("*").Omit(clause.Associations, "created_at").Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("carton_id = ?", dto.ID).Delete(&CartonItemDTO{}).Error; err != nil {
			return err
		}
		return r.writeChildren(tx, c, dto.Items)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

func (r *GormCartonRepository) writeChildren(tx *gorm.DB, c *carton.Carton, items []CartonItemDTO) error {
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}

	drained := c.DrainEvents()
	if len(drained) == 0 {
		return nil
	}
	events := make([]CartonStatusEventDTO, 0, len(drained))
	for _, e := range drained {
		events = append(events, eventFromDomain(e))
	}
	return tx.Create(&events).Error
}

func (r *GormCartonRepository) Get(ctx context.Context, id uuid.UUID) (*carton.Carton, error) {
	return r.first(r.db.WithContext(ctx), "carton", id, "id = ?", id)
}

func (r *GormCartonRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*carton.Carton, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "carton", id, "id = ?", id)
}

func (r *GormCartonRepository) GetByCode(ctx context.Context, code string) (*carton.Carton, error) {
	return r.first(r.db.WithContext(ctx), "carton code", code, "code = ?", code)
}

func (r *GormCartonRepository) first(db *gorm.DB, param string, id any, query string, args ...any) (*carton.Carton, error) {
	var dto CartonDTO
	if err := db.Preload("Items", orderItems).First(&dto, append([]any{query}, args...)...).Error; err != nil {
		return nil, pgerr.NotFound(err, param, id)
	}
	return toDomain(dto)
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func (r *GormCartonRepository) CodesForDate(ctx context.Context, date time.Time) ([]string, error) {
	codes := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&CartonDTO{}).
		Where("code LIKE ?", "%-"+carton.CodeDate(date)+"-%").
		Pluck("code", &codes).Error
	return codes, err
}

func (r *GormCartonRepository) ListReadyUnassigned(ctx context.Context) ([]*carton.Carton, error) {
	var dtos []CartonDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", orderItems).
		Where("status = ? AND shipment_id IS NULL", carton.StatusPacked.String()).
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	cartons := make([]*carton.Carton, 0, len(dtos))
	for _, dto := range dtos {
		c, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		cartons = append(cartons, c)
	}
	return cartons, nil
}

func (r *GormCartonRepository) StatusesByShipment(ctx context.Context, shipmentID uuid.UUID) ([]carton.Status, error) {
	var codes []string
	if err := r.db.WithContext(ctx).Model(&CartonDTO{}).
		Where("shipment_id = ?", shipmentID).
		Pluck("status", &codes).Error; err != nil {
		return nil, err
	}

	statuses := make([]carton.Status, 0, len(codes))
	for _, code := range codes {
		s, err := carton.ParseStatus(code)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (r *GormCartonRepository) ListEvents(ctx context.Context, cartonID uuid.UUID) ([]carton.StatusEvent, error) {
	var dtos []CartonStatusEventDTO
	if err := r.db.WithContext(ctx).Where("carton_id = ?", cartonID).Order("at ASC, seq ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]carton.StatusEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

type GormCartonFormatRepository struct {
	db *gorm.DB
}

func NewGormCartonFormatRepository(db *gorm.DB) *GormCartonFormatRepository {
	return &GormCartonFormatRepository{db: db}
}

func (r *GormCartonFormatRepository) Add(ctx context.Context, f *carton.Format) error {
	dto := formatFromDomain(f)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

// Default prefers the format flagged default, then the first one by name.
func (r *GormCartonFormatRepository) Default(ctx context.Context) (*carton.Format, error) {
	var dto CartonFormatDTO
	if err := r.db.WithContext(ctx).Order("is_default DESC, name ASC").First(&dto).Error; err != nil {
		return nil, pgerr.NotFound(err, "carton format", "default")
	}
	return formatToDomain(dto)
}

