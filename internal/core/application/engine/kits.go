package engine

import (
	"context"
	"fmt"
	"strings"

	"wms/internal/core/domain/model/stock"
	"wms/internal/core/ports"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// ComponentQuantity is the stock one product needs from its own lots.
type ComponentQuantity struct {
	Product  *stock.Product
	Quantity int
}

// ExpandKit returns the plain products packing quantity units of product
// takes from stock, in declaration order. A plain product expands to itself.
// Nested kits are multiplied out; a kit that contains itself, directly or
// through other kits, is a packing error.
func (e *Engine) ExpandKit(ctx context.Context, product *stock.Product, quantity int) ([]ComponentQuantity, error) {
	if quantity <= 0 {
		return nil, errs.NewInvalidQuantityError(quantity)
	}

	x := kitExpander{products: e.repos.ProductRepository(), memo: map[uuid.UUID][]ComponentQuantity{}}
	unit, err := x.expand(ctx, product)
	if err != nil {
		return nil, err
	}

	out := make([]ComponentQuantity, 0, len(unit))
	for _, c := range unit {
		out = append(out, ComponentQuantity{Product: c.Product, Quantity: c.Quantity * quantity})
	}
	return out, nil
}

type kitExpander struct {
	products ports.ProductRepository
	memo     map[uuid.UUID][]ComponentQuantity
	path     []*stock.Product
}

func (x *kitExpander) expand(ctx context.Context, p *stock.Product) ([]ComponentQuantity, error) {
	if unit, ok := x.memo[p.ID()]; ok {
		return unit, nil
	}
	for i, seen := range x.path {
		if seen.ID() == p.ID() {
			return nil, kitCycleError(append(x.path[i:], p))
		}
	}
	if !p.IsKit() {
		unit := []ComponentQuantity{{Product: p, Quantity: 1}}
		x.memo[p.ID()] = unit
		return unit, nil
	}

	kit := p.KitComponents()
	ids := make([]uuid.UUID, 0, len(kit))
	for _, c := range kit {
		ids = append(ids, c.ComponentID)
	}
	components, err := x.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	x.path = append(x.path, p)
	var unit []ComponentQuantity
	index := map[uuid.UUID]int{}
	for _, c := range kit {
		component, ok := components[c.ComponentID]
		if !ok {
			return nil, errs.NewPackingError(fmt.Sprintf("kit %s: component %s not found", p.SKU(), c.ComponentID))
		}
		nested, err := x.expand(ctx, component)
		if err != nil {
			return nil, err
		}
		for _, n := range nested {
			if i, ok := index[n.Product.ID()]; ok {
				unit[i].Quantity += n.Quantity * c.Quantity
				continue
			}
			index[n.Product.ID()] = len(unit)
			unit = append(unit, ComponentQuantity{Product: n.Product, Quantity: n.Quantity * c.Quantity})
		}
	}
	x.path = x.path[:len(x.path)-1]

	x.memo[p.ID()] = unit
	return unit, nil
}

func kitCycleError(cycle []*stock.Product) error {
	skus := make([]string, 0, len(cycle))
	for _, p := range cycle {
		skus = append(skus, p.SKU())
	}
	return errs.NewPackingError("kit cycle " + strings.Join(skus, " -> "))
}
