package stock

import (
	"errors"
	"fmt"
	"strings"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
	ErrSKUIsRequired           = errs.NewValueIsRequiredError("sku")
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
)

// Product is a catalogue entry. Lots reference it; only descriptive metadata
// ever changes after creation.
type Product struct {
	id                uuid.UUID
	sku               string
	name              string
	rootCategory      string
	weightG           int
	volumeCm3         decimal.Decimal
	defaultLocation   *kernel.Location
	quarantineDefault bool
	storageConditions string
	kit               []KitComponent
	guard             guard.ConstructorGuard
}

// NewProduct creates a product. rootCategory is the name of the top level
// category, used to derive carton type codes; it may be empty.
func NewProduct(id uuid.UUID, sku, name, rootCategory string) (*Product, error) {
	p := &Product{
		rootCategory: strings.TrimSpace(rootCategory),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setSKU(sku),
		p.setName(name),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a product read from storage.
func RestoreProduct(
	id uuid.UUID,
	sku, name, rootCategory string,
	weightG int,
	volumeCm3 decimal.Decimal,
	defaultLocation *kernel.Location,
	quarantineDefault bool,
	storageConditions string,
) (*Product, error) {
	p, err := NewProduct(id, sku, name, rootCategory)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		p.SetWeightG(weightG),
		p.SetVolumeCm3(volumeCm3),
	); err != nil {
		return nil, err
	}

	p.defaultLocation = defaultLocation
	p.quarantineDefault = quarantineDefault
	p.storageConditions = storageConditions
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() uuid.UUID                     { return p.id }
func (p *Product) SKU() string                       { return p.sku }
func (p *Product) Name() string                      { return p.name }
func (p *Product) RootCategory() string              { return p.rootCategory }
func (p *Product) WeightG() int                      { return p.weightG }
func (p *Product) VolumeCm3() decimal.Decimal        { return p.volumeCm3 }
func (p *Product) DefaultLocation() *kernel.Location { return p.defaultLocation }
func (p *Product) QuarantineDefault() bool           { return p.quarantineDefault }
func (p *Product) StorageConditions() string         { return p.storageConditions }

// HasWeight reports whether a unit weight is known.
func (p *Product) HasWeight() bool { return p.weightG > 0 }

// HasVolume reports whether a unit volume is known.
func (p *Product) HasVolume() bool { return p.volumeCm3.IsPositive() }

// SetWeightG sets the unit weight in grams; 0 clears it.
func (p *Product) SetWeightG(weightG int) error {
	if weightG < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%d is negative", weightG))
	}
	p.weightG = weightG
	return nil
}

// SetVolumeCm3 sets the unit volume; zero clears it.
func (p *Product) SetVolumeCm3(volume decimal.Decimal) error {
	if volume.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("volume", fmt.Errorf("%s is negative", volume))
	}
	p.volumeCm3 = volume
	return nil
}

func (p *Product) SetDefaultLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	p.defaultLocation = location
	return nil
}

// SetQuarantineDefault makes lots received without an explicit status start
// out quarantined.
func (p *Product) SetQuarantineDefault(quarantine bool) {
	p.quarantineDefault = quarantine
}

func (p *Product) SetStorageConditions(conditions string) {
	p.storageConditions = strings.TrimSpace(conditions)
}

func (p *Product) setID(id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.NewValueIsRequiredError("id")
	}
	p.id = id
	return nil
}

func (p *Product) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrSKUIsRequired
	}
	p.sku = sku
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}
