package services

import (
	"fmt"
	"sort"

	"wms/internal/core/domain/model/carton"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bin is one planned carton.
type Bin struct {
	Items []BinItem

	remainingVolume decimal.Decimal
	remainingWeight decimal.Decimal
}

// BinItem is the quantity of one product planned into a bin.
type BinItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// Quantity returns how many units of productID the bin holds.
func (b Bin) Quantity(productID uuid.UUID) int {
	for _, it := range b.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

func (b *Bin) add(productID uuid.UUID, quantity int) {
	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			b.Items[i].Quantity += quantity
			return
		}
	}
	b.Items = append(b.Items, BinItem{ProductID: productID, Quantity: quantity})
}

// FirstFitDecreasing packs the largest units first (by the bigger of their
// volume and weight share of the carton) into the first bin with room.
//
// Products without weight or volume are planned on the measure they have and
// reported as warnings. A product with neither is an error, unless
// ApplyDefaults substitutes DefaultWeightG and DefaultVolumeCm3. A unit
// heavier or bulkier than the carton is an error.
type FirstFitDecreasing struct {
	ApplyDefaults    bool
	DefaultWeightG   int
	DefaultVolumeCm3 decimal.Decimal
}

func NewFirstFitDecreasing() FirstFitDecreasing {
	return FirstFitDecreasing{
		DefaultWeightG:   5,
		DefaultVolumeCm3: decimal.NewFromInt(1),
	}
}

type unit struct {
	productID uuid.UUID
	quantity  int
	weight    decimal.Decimal
	volume    decimal.Decimal
	ratio     decimal.Decimal
}

// Plan returns the bins, the blocking errors and the warnings. When errors is
// non-empty bins is nil.
func (p FirstFitDecreasing) Plan(lines []ProductQuantity, format *carton.Format) ([]Bin, []string, []string) {
	var errors, warnings []string
	if format == nil {
		return nil, []string{"a carton format is required"}, nil
	}

	cartonVolume := format.VolumeCm3()
	cartonWeight := decimal.NewFromInt(int64(format.MaxWeightG()))

	units := make([]unit, 0, len(lines))
	for _, line := range lines {
		if line.Product == nil || line.Quantity <= 0 {
			continue
		}
		product := line.Product
		hasWeight, hasVolume := product.HasWeight(), product.HasVolume()
		weight := decimal.NewFromInt(int64(product.WeightG()))
		volume := product.VolumeCm3()

		switch {
		case !hasWeight && !hasVolume && p.ApplyDefaults:
			hasWeight, hasVolume = true, true
			weight = decimal.NewFromInt(int64(p.DefaultWeightG))
			volume = p.DefaultVolumeCm3
			warnings = append(warnings, fmt.Sprintf("%s: weight and volume missing, defaults applied", product.Name()))
		case !hasWeight && !hasVolume:
			errors = append(errors, fmt.Sprintf("%s: weight and volume missing", product.Name()))
			continue
		case !hasWeight:
			warnings = append(warnings, fmt.Sprintf("%s: weight missing, planned on volume only", product.Name()))
		case !hasVolume:
			warnings = append(warnings, fmt.Sprintf("%s: volume missing, planned on weight only", product.Name()))
		}
		if !hasWeight {
			weight = decimal.Zero
		}
		if !hasVolume {
			volume = decimal.Zero
		}

		if weight.GreaterThan(cartonWeight) {
			errors = append(errors, fmt.Sprintf("%s: unit weight exceeds the carton max weight", product.Name()))
		}
		if volume.GreaterThan(cartonVolume) {
			errors = append(errors, fmt.Sprintf("%s: unit volume exceeds the carton volume", product.Name()))
		}

		units = append(units, unit{
			productID: product.ID(),
			quantity:  line.Quantity,
			weight:    weight,
			volume:    volume,
			ratio:     share(volume, cartonVolume, weight, cartonWeight),
		})
	}
	if len(errors) > 0 {
		return nil, errors, warnings
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].ratio.GreaterThan(units[j].ratio)
	})

	var bins []*Bin
	for _, u := range units {
		remaining := u.quantity
		for remaining > 0 {
			placed := false
			for _, b := range bins {
				if u.volume.GreaterThan(b.remainingVolume) || u.weight.GreaterThan(b.remainingWeight) {
					continue
				}
				n := fit(remaining, u, b.remainingVolume, b.remainingWeight)
				if n <= 0 {
					continue
				}
				b.take(u, n)
				remaining -= n
				placed = true
				break
			}
			if placed {
				continue
			}

			n := fit(remaining, u, cartonVolume, cartonWeight)
			if n <= 0 {
				n = 1
			}
			b := &Bin{remainingVolume: cartonVolume, remainingWeight: cartonWeight}
			b.take(u, n)
			bins = append(bins, b)
			remaining -= n
		}
	}

	out := make([]Bin, len(bins))
	for i, b := range bins {
		out[i] = *b
	}
	return out, nil, warnings
}

func (b *Bin) take(u unit, n int) {
	count := decimal.NewFromInt(int64(n))
	b.remainingVolume = b.remainingVolume.Sub(u.volume.Mul(count))
	b.remainingWeight = b.remainingWeight.Sub(u.weight.Mul(count))
	b.add(u.productID, n)
}

// fit is how many units, at most wanted, fit in the given room.
func fit(wanted int, u unit, volume, weight decimal.Decimal) int {
	n := wanted
	if u.volume.IsPositive() {
		q, _ := volume.QuoRem(u.volume, 0)
		n = min(n, int(q.IntPart()))
	}
	if u.weight.IsPositive() {
		q, _ := weight.QuoRem(u.weight, 0)
		n = min(n, int(q.IntPart()))
	}
	return n
}

func share(volume, cartonVolume, weight, cartonWeight decimal.Decimal) decimal.Decimal {
	ratio := decimal.Zero
	if volume.IsPositive() && cartonVolume.IsPositive() {
		ratio = decimal.Max(ratio, volume.Div(cartonVolume))
	}
	if weight.IsPositive() && cartonWeight.IsPositive() {
		ratio = decimal.Max(ratio, weight.Div(cartonWeight))
	}
	return ratio
}
