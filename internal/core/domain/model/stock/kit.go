package stock

import (
	"fmt"

	"wms/internal/pkg/errs"

	"github.com/google/uuid"
)

// KitComponent is Quantity units of ComponentID inside one unit of a kit.
type KitComponent struct {
	ComponentID uuid.UUID
	Quantity    int
}

// IsKit reports whether packing the product draws on its components instead
// of its own lots.
func (p *Product) IsKit() bool { return len(p.kit) > 0 }

// KitComponents returns the components in the order they were declared.
func (p *Product) KitComponents() []KitComponent {
	out := make([]KitComponent, len(p.kit))
	copy(out, p.kit)
	return out
}

// SetKitComponents replaces the kit composition; an empty list makes the
// product a plain one. Components may be kits themselves.
func (p *Product) SetKitComponents(components []KitComponent) error {
	seen := make(map[uuid.UUID]struct{}, len(components))
	kit := make([]KitComponent, 0, len(components))
	for _, c := range components {
		if c.ComponentID == uuid.Nil {
			return errs.NewValueIsRequiredError("kit component")
		}
		if c.ComponentID == p.id {
			return errs.NewValueIsInvalidErrorWithCause("kit component",
				fmt.Errorf("%s cannot contain itself", p.sku))
		}
		if c.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("kit component quantity", c.Quantity, 1, "unbounded")
		}
		if _, ok := seen[c.ComponentID]; ok {
			return errs.NewValueIsInvalidErrorWithCause("kit component",
				fmt.Errorf("%s is listed twice", c.ComponentID))
		}
		seen[c.ComponentID] = struct{}{}
		kit = append(kit, c)
	}
	p.kit = kit
	return nil
}
