package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"wms/internal/core/domain/model/reference"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) Add(_ context.Context, p *stock.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, existing := range r.store.data.products {
		if existing.sku == p.SKU() {
			return errs.NewDuplicateKeyError("products_sku_key", nil)
		}
	}
	r.store.data.products[p.ID()] = productFromDomain(p)
	return nil
}

func (r *ProductRepository) Update(_ context.Context, p *stock.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := r.store.data.products[p.ID()]; !ok {
		return errs.NewObjectNotFoundError("product", p.ID())
	}
	r.store.data.products[p.ID()] = productFromDomain(p)
	return nil
}

func (r *ProductRepository) Get(_ context.Context, id uuid.UUID) (*stock.Product, error) {
	rec, ok := r.store.data.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id)
	}
	return rec.toDomain()
}

func (r *ProductRepository) GetMany(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*stock.Product, error) {
	out := make(map[uuid.UUID]*stock.Product, len(ids))
	for _, id := range ids {
		rec, ok := r.store.data.products[id]
		if !ok {
			continue
		}
		p, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

type LotRepository struct {
	store *Store
}

func (r *LotRepository) Add(_ context.Context, lot *stock.Lot) error {
	if err := lot.Validate(); err != nil {
		return err
	}
	r.store.data.lots[lot.ID()] = lotFromDomain(lot)
	return nil
}

func (r *LotRepository) Update(_ context.Context, lot *stock.Lot) error {
	if err := lot.Validate(); err != nil {
		return err
	}
	if _, ok := r.store.data.lots[lot.ID()]; !ok {
		return errs.NewObjectNotFoundError("lot", lot.ID())
	}
	r.store.data.lots[lot.ID()] = lotFromDomain(lot)
	return nil
}

func (r *LotRepository) Get(_ context.Context, id uuid.UUID) (*stock.Lot, error) {
	rec, ok := r.store.data.lots[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("lot", id)
	}
	return rec.toDomain()
}

func (r *LotRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*stock.Lot, error) {
	return r.Get(ctx, id)
}

func (r *LotRepository) ListForUpdate(_ context.Context, ids []uuid.UUID) ([]*stock.Lot, error) {
	return r.collect(func(rec lotRecord) bool { return slices.Contains(ids, rec.id) })
}

func (r *LotRepository) CandidateLots(_ context.Context, productID uuid.UUID, _ bool) ([]*stock.Lot, error) {
	return r.collect(func(rec lotRecord) bool {
		return rec.productID == productID && rec.status == stock.LotStatusAvailable && rec.onHand-rec.reserved > 0
	})
}

func (r *LotRepository) ListExpiredAvailable(_ context.Context, today time.Time) ([]*stock.Lot, error) {
	day := stock.Date(today)
	return r.collect(func(rec lotRecord) bool {
		return rec.status == stock.LotStatusAvailable && rec.expiresOn != nil && rec.expiresOn.Before(day)
	})
}

// collect rebuilds the matching lots in FEFO order.
func (r *LotRepository) collect(match func(lotRecord) bool) ([]*stock.Lot, error) {
	var lots []*stock.Lot
	for _, rec := range r.store.data.lots {
		if !match(rec) {
			continue
		}
		lot, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	stock.SortFEFO(lots)
	return lots, nil
}

type MovementRepository struct {
	store *Store
}

func (r *MovementRepository) Add(_ context.Context, m *stock.Movement) error {
	r.store.data.movements = append(r.store.data.movements, m)
	return nil
}

func (r *MovementRepository) ListByLot(_ context.Context, lotID uuid.UUID) ([]*stock.Movement, error) {
	var out []*stock.Movement
	for _, m := range r.store.data.movements {
		if m.LotID() == lotID {
			out = append(out, m)
		}
	}
	return out, nil
}

type ReceiptRepository struct {
	store *Store
}

func (r *ReceiptRepository) Add(_ context.Context, receipt *stock.Receipt) error {
	if err := receipt.Validate(); err != nil {
		return err
	}
	for _, existing := range r.store.data.receipts {
		if existing.Reference() == receipt.Reference() {
			return errs.NewDuplicateKeyError("receipts_reference_key", nil)
		}
	}
	r.store.data.receipts[receipt.ID()] = receipt
	return nil
}

func (r *ReceiptRepository) Get(_ context.Context, id uuid.UUID) (*stock.Receipt, error) {
	receipt, ok := r.store.data.receipts[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("receipt", id)
	}
	return receipt, nil
}

func (r *ReceiptRepository) ReferencesForYear(_ context.Context, year int) ([]string, error) {
	prefix := reference.YearPrefix(year) + "-"
	var refs []string
	for _, receipt := range r.store.data.receipts {
		if strings.HasPrefix(receipt.Reference(), prefix) {
			refs = append(refs, receipt.Reference())
		}
	}
	return refs, nil
}

func (r *ReceiptRepository) ReferencesForDonor(_ context.Context, donorID uuid.UUID, year int) ([]string, error) {
	var refs []string
	for _, receipt := range r.store.data.receipts {
		if receipt.Donor() != nil && receipt.Donor().ID == donorID && receipt.ReceivedOn().Year() == year {
			refs = append(refs, receipt.Reference())
		}
	}
	return refs, nil
}
