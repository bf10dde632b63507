package stockrepo

import (
	"context"
	"time"

	"wms/internal/adapters/out/postgres/pgerr"
	"wms/internal/core/domain/model/reference"
	"wms/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fefoOrder matches stock.CompareFEFO, so rows are locked in the order the
// allocator walks them.
const fefoOrder = "expires_on ASC NULLS LAST, received_on ASC NULLS LAST, id ASC"

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id uuid.UUID, aggregate any)
}

func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{db: db, tracker: tracker}
}

// Add saves a new product with its kit components. A taken SKU yields
// errs.DuplicateKeyError.
func (r *GormProductRepository) Add(ctx context.Context, p *stock.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(p)
	items := kitItemsFromDomain(p)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return pgerr.Translate(err)
	}

	r.tracker.TrackAggregate(p.ID(), p)
	return nil
}

// Update rewrites the product row and replaces its kit components.
func (r *GormProductRepository) Update(ctx context.Context, p *stock.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(p)
	items := kitItemsFromDomain(p)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ProductDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("product_id = ?", dto.ID).Delete(&ProductKitItemDTO{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return pgerr.Translate(err)
	}

	r.tracker.TrackAggregate(p.ID(), p)
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id uuid.UUID) (*stock.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		return nil, pgerr.NotFound(err, "product", id)
	}
	kits, err := r.kitItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return productToDomain(dto, kits[id])
}

func (r *GormProductRepository) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*stock.Product, error) {
	products := make(map[uuid.UUID]*stock.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	kits, err := r.kitItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, dto := range dtos {
		p, err := productToDomain(dto, kits[dto.ID])
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}
	return products, nil
}

func (r *GormProductRepository) kitItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]ProductKitItemDTO, error) {
	var items []ProductKitItemDTO
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", ids).
		Order("product_id, position").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID][]ProductKitItemDTO)
	for _, item := range items {
		byProduct[item.ProductID] = append(byProduct[item.ProductID], item)
	}
	return byProduct, nil
}

// GormLotRepository implements LotRepository using GORM. Locking reads use
// SELECT ... FOR UPDATE.
type GormLotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormLotRepository(db *gorm.DB, tracker aggregateTracker) *GormLotRepository {
	return &GormLotRepository{db: db, tracker: tracker}
}

func (r *GormLotRepository) Add(ctx context.Context, lot *stock.Lot) error {
	if err := lot.Validate(); err != nil {
		return err
	}

	dto := lotFromDomain(lot)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	r.tracker.TrackAggregate(lot.ID(), lot)
	return nil
}

func (r *GormLotRepository) Update(ctx context.Context, lot *stock.Lot) error {
	if err := lot.Validate(); err != nil {
		return err
	}

	dto := lotFromDomain(lot)
	result := r.db.WithContext(ctx).Model(&LotDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(lot.ID(), lot)
	return nil
}

func (r *GormLotRepository) Get(ctx context.Context, id uuid.UUID) (*stock.Lot, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormLotRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*stock.Lot, error) {
	return r.get(r.db.WithContext(ctx).Clauses(forUpdate()), id)
}

func (r *GormLotRepository) get(db *gorm.DB, id uuid.UUID) (*stock.Lot, error) {
	var dto LotDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		return nil, pgerr.NotFound(err, "lot", id)
	}
	return lotToDomain(dto)
}

func (r *GormLotRepository) ListForUpdate(ctx context.Context, ids []uuid.UUID) ([]*stock.Lot, error) {
	if len(ids) == 0 {
		return []*stock.Lot{}, nil
	}
	return r.list(r.db.WithContext(ctx).Clauses(forUpdate()).Where("id IN ?", ids))
}

func (r *GormLotRepository) CandidateLots(ctx context.Context, productID uuid.UUID, lock bool) ([]*stock.Lot, error) {
	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(forUpdate())
	}
	return r.list(db.Where("product_id = ? AND status = ? AND on_hand - reserved > 0",
		productID, stock.LotStatusAvailable.String()))
}

func (r *GormLotRepository) ListExpiredAvailable(ctx context.Context, today time.Time) ([]*stock.Lot, error) {
	return r.list(r.db.WithContext(ctx).Clauses(forUpdate()).
		Where("status = ? AND expires_on < ?", stock.LotStatusAvailable.String(), stock.Date(today)))
}

func (r *GormLotRepository) list(db *gorm.DB) ([]*stock.Lot, error) {
	var dtos []LotDTO
	if err := db.Order(fefoOrder).Find(&dtos).Error; err != nil {
		return nil, err
	}

	lots := make([]*stock.Lot, 0, len(dtos))
	for _, dto := range dtos {
		lot, err := lotToDomain(dto)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

// GormMovementRepository appends to the stock_movements journal. Rows are
// never updated.
type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) Add(ctx context.Context, movement *stock.Movement) error {
	dto := movementFromDomain(movement)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormMovementRepository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*stock.Movement, error) {
	var dtos []MovementDTO
	if err := r.db.WithContext(ctx).Where("lot_id = ?", lotID).Order("created_at ASC, seq ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	movements := make([]*stock.Movement, 0, len(dtos))
	for _, dto := range dtos {
		m, err := movementToDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

type GormReceiptRepository struct {
	db *gorm.DB
}

func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// Add runs inside a savepoint: a reference collision is reported as
// errs.DuplicateKeyError and the reference generator may try again.
func (r *GormReceiptRepository) Add(ctx context.Context, receipt *stock.Receipt) error {
	if err := receipt.Validate(); err != nil {
		return err
	}

	dto := receiptFromDomain(receipt)
	return pgerr.Savepoint(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
}

func (r *GormReceiptRepository) Get(ctx context.Context, id uuid.UUID) (*stock.Receipt, error) {
	var dto ReceiptDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		return nil, pgerr.NotFound(err, "receipt", id)
	}
	return receiptToDomain(dto)
}

func (r *GormReceiptRepository) ReferencesForYear(ctx context.Context, year int) ([]string, error) {
	refs := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&ReceiptDTO{}).
		Where("reference LIKE ?", reference.YearPrefix(year)+"-%").
		Pluck("reference", &refs).Error
	return refs, err
}

func (r *GormReceiptRepository) ReferencesForDonor(ctx context.Context, donorID uuid.UUID, year int) ([]string, error) {
	refs := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&ReceiptDTO{}).
		Where("donor_id = ? AND EXTRACT(YEAR FROM received_on) = ?", donorID, year).
		Pluck("reference", &refs).Error
	return refs, err
}
