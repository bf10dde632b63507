package services

import "wms/internal/core/domain/model/stock"

// ProductQuantity is a quantity of one product, either requested for packing
// or already inside a carton.
type ProductQuantity struct {
	Product  *stock.Product
	Quantity int
}
