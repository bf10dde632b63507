// Package sequencerepo persists the reference counters, one row per scope.
package sequencerepo

import (
	"context"

	"wms/internal/adapters/out/postgres/pgerr"
	"wms/internal/core/domain/model/reference"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceDTO is one counter. Scope is reference.Scope.Key(); the other
// columns repeat its parts for reporting.
type SequenceDTO struct {
	Scope      string     `gorm:"type:varchar(128);primaryKey"`
	Kind       string     `gorm:"type:varchar(32);not null"`
	Year       int        `gorm:"type:int;not null"`
	DonorID    *uuid.UUID `gorm:"type:uuid"`
	LastNumber int        `gorm:"type:int;not null"`
}

func (SequenceDTO) TableName() string {
	return "reference_sequences"
}

func fromDomain(c *reference.Counter) SequenceDTO {
	scope := c.Scope()
	dto := SequenceDTO{
		Scope:      scope.Key(),
		Kind:       scope.Kind.String(),
		Year:       scope.Year,
		LastNumber: c.LastNumber(),
	}
	if scope.DonorID != uuid.Nil {
		id := scope.DonorID
		dto.DonorID = &id
	}
	return dto
}

func toDomain(dto SequenceDTO) (*reference.Counter, error) {
	kind, err := reference.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	scope := reference.Scope{Kind: kind, Year: dto.Year}
	if dto.DonorID != nil {
		scope.DonorID = *dto.DonorID
	}
	return reference.NewCounter(scope, dto.LastNumber)
}

type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

func (r *GormSequenceRepository) GetForUpdate(ctx context.Context, scope reference.Scope) (*reference.Counter, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var dto SequenceDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "scope = ?", scope.Key()).Error
	if err != nil {
		return nil, pgerr.NotFound(err, "reference sequence", scope.Key())
	}
	return toDomain(dto)
}

// Add creates the counter inside a savepoint. Two transactions creating the
// same scope race on the primary key; the loser gets errs.DuplicateKeyError
// and re-reads the winner's row.
func (r *GormSequenceRepository) Add(ctx context.Context, counter *reference.Counter) error {
	if err := counter.Validate(); err != nil {
		return err
	}

	dto := fromDomain(counter)
	return pgerr.Savepoint(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
}

func (r *GormSequenceRepository) Update(ctx context.Context, counter *reference.Counter) error {
	if err := counter.Validate(); err != nil {
		return err
	}

	dto := fromDomain(counter)
	result := r.db.WithContext(ctx).Model(&SequenceDTO{}).
		Where("scope = ?", dto.Scope).
		Update("last_number", dto.LastNumber)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
