package commands

import (
	"errors"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// ProductAttributes are the optional properties of a catalog product.
// Zero weight or volume means unknown. KitComponents makes the product a kit.
type ProductAttributes struct {
	WeightG           int
	VolumeCm3         decimal.Decimal
	DefaultLocation   *kernel.Location
	QuarantineDefault bool
	StorageConditions string
	KitComponents     []stock.KitComponent
}

// CreateProductCommand registers a product in the catalog.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID    uuid.UUID
	sku          string
	name         string
	rootCategory string
	attributes   ProductAttributes

	guard guard.ConstructorGuard
}

// NewCreateProductCommand checks the identity fields here; SKU and name
// rules are enforced by the product itself.
func NewCreateProductCommand(
	productID uuid.UUID,
	sku, name, rootCategory string,
	attributes ProductAttributes,
) (CreateProductCommand, error) {
	if productID == uuid.Nil {
		return CreateProductCommand{}, errs.NewValueIsRequiredError("product id")
	}
	if attributes.WeightG < 0 {
		return CreateProductCommand{}, errs.NewValueIsOutOfRangeError("weight", attributes.WeightG, 0, "unbounded")
	}
	if attributes.VolumeCm3.IsNegative() {
		return CreateProductCommand{}, errs.NewValueIsOutOfRangeError("volume", attributes.VolumeCm3, 0, "unbounded")
	}

	return CreateProductCommand{
		productID:    productID,
		sku:          sku,
		name:         name,
		rootCategory: rootCategory,
		attributes:   attributes,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() uuid.UUID          { return c.productID }
func (c CreateProductCommand) SKU() string                   { return c.sku }
func (c CreateProductCommand) Name() string                  { return c.name }
func (c CreateProductCommand) RootCategory() string          { return c.rootCategory }
func (c CreateProductCommand) Attributes() ProductAttributes { return c.attributes }
