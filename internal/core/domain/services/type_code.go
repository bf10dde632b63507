package services

import (
	"wms/internal/core/domain/model/carton"
	"wms/internal/core/domain/model/kernel"
)

// DominantTypeCode returns the type code of the root category carrying the
// most weight in contents. When no product has a weight the category with the
// largest quantity wins; ties go to the category seen first. Empty contents
// yield carton.UnknownTypeCode.
func DominantTypeCode(contents []ProductQuantity) string {
	var order []string
	weight := make(map[string]int)
	quantity := make(map[string]int)

	for _, c := range contents {
		if c.Product == nil {
			continue
		}
		code := kernel.Initials(c.Product.RootCategory())
		if _, seen := quantity[code]; !seen {
			order = append(order, code)
		}
		weight[code] += c.Product.WeightG() * c.Quantity
		quantity[code] += c.Quantity
	}
	if len(order) == 0 {
		return carton.UnknownTypeCode
	}

	byWeight := weight
	if heaviest(order, weight) == 0 {
		byWeight = quantity
	}
	best := order[0]
	for _, code := range order[1:] {
		if byWeight[code] > byWeight[best] {
			best = code
		}
	}
	return best
}

func heaviest(order []string, weight map[string]int) int {
	top := 0
	for _, code := range order {
		top = max(top, weight[code])
	}
	return top
}
