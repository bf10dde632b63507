package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"wms/internal/core/domain/model/carton"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

type CartonRepository struct {
	store *Store
}

func (r *CartonRepository) Add(_ context.Context, c *carton.Carton) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if r.codeTaken(c.Code(), c.ID()) {
		return errs.NewDuplicateKeyError("cartons_code_key", nil)
	}
	r.store.data.cartons[c.ID()] = cartonFromDomain(c)
	r.store.data.events = append(r.store.data.events, c.DrainEvents()...)
	return nil
}

func (r *CartonRepository) Update(_ context.Context, c *carton.Carton) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := r.store.data.cartons[c.ID()]; !ok {
		return errs.NewObjectNotFoundError("carton", c.ID())
	}
	if r.codeTaken(c.Code(), c.ID()) {
		return errs.NewDuplicateKeyError("cartons_code_key", nil)
	}
	r.store.data.cartons[c.ID()] = cartonFromDomain(c)
	r.store.data.events = append(r.store.data.events, c.DrainEvents()...)
	return nil
}

func (r *CartonRepository) codeTaken(code string, owner uuid.UUID) bool {
	for id, rec := range r.store.data.cartons {
		if rec.code == code && id != owner {
			return true
		}
	}
	return false
}

func (r *CartonRepository) Get(_ context.Context, id uuid.UUID) (*carton.Carton, error) {
	rec, ok := r.store.data.cartons[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("carton", id)
	}
	return rec.toDomain()
}

func (r *CartonRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*carton.Carton, error) {
	return r.Get(ctx, id)
}

func (r *CartonRepository) GetByCode(_ context.Context, code string) (*carton.Carton, error) {
	for _, rec := range r.store.data.cartons {
		if rec.code == code {
			return rec.toDomain()
		}
	}
	return nil, errs.NewObjectNotFoundError("carton", code)
}

func (r *CartonRepository) CodesForDate(_ context.Context, date time.Time) ([]string, error) {
	needle := "-" + carton.CodeDate(date) + "-"
	var codes []string
	for _, rec := range r.store.data.cartons {
		if strings.Contains(rec.code, needle) {
			codes = append(codes, rec.code)
		}
	}
	return codes, nil
}

func (r *CartonRepository) ListReadyUnassigned(_ context.Context) ([]*carton.Carton, error) {
	var recs []cartonRecord
	for _, rec := range r.store.data.cartons {
		if rec.status == carton.StatusPacked && rec.shipmentID == nil {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].code < recs[j].code })

	out := make([]*carton.Carton, 0, len(recs))
	for _, rec := range recs {
		c, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CartonRepository) StatusesByShipment(_ context.Context, shipmentID uuid.UUID) ([]carton.Status, error) {
	var out []carton.Status
	for _, rec := range r.store.data.cartons {
		if rec.shipmentID != nil && *rec.shipmentID == shipmentID {
			out = append(out, rec.status)
		}
	}
	return out, nil
}

func (r *CartonRepository) ListEvents(_ context.Context, cartonID uuid.UUID) ([]carton.StatusEvent, error) {
	var out []carton.StatusEvent
	for _, ev := range r.store.data.events {
		if ev.CartonID == cartonID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type CartonFormatRepository struct {
	store *Store
}

func (r *CartonFormatRepository) Add(_ context.Context, f *carton.Format) error {
	for _, existing := range r.store.data.formats {
		if existing.Name() == f.Name() {
			return errs.NewDuplicateKeyError("carton_formats_name_key", nil)
		}
	}
	r.store.data.formats = append(r.store.data.formats, f)
	return nil
}

func (r *CartonFormatRepository) Default(_ context.Context) (*carton.Format, error) {
	formats := append([]*carton.Format(nil), r.store.data.formats...)
	if len(formats) == 0 {
		return nil, errs.NewObjectNotFoundError("carton format", "default")
	}
	sort.SliceStable(formats, func(i, j int) bool { return formats[i].Name() < formats[j].Name() })
	for _, f := range formats {
		if f.IsDefault() {
			return f, nil
		}
	}
	return formats[0], nil
}
