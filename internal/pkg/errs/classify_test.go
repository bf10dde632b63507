package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"wms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		class    errs.Class
		conflict bool
	}{
		{"not found", errs.NewObjectNotFoundError("lot", "1"), "not_found", errs.ClassNotFound, false},
		{"required", errs.NewValueIsRequiredError("sku"), "value_required", errs.ClassInvalid, false},
		{"quantity", errs.NewInvalidQuantityError(0), "invalid_quantity", errs.ClassInvalid, false},
		{"packing", errs.NewPackingError("too heavy"), "packing_error", errs.ClassInvalid, false},
		{"stock", errs.NewInsufficientStockError(3), "insufficient_stock", errs.ClassConflict, true},
		{"wrapped", fmt.Errorf("reserve: %w", errs.NewOrderNotEditableError("ORD-1", "ready")),
			"order_not_editable", errs.ClassConflict, true},
		{"duplicate", errs.NewDuplicateKeyError("cartons_code_key", nil), "duplicate_key", errs.ClassConflict, true},
		{"unknown", errors.New("connection reset"), "internal", errs.ClassUnknown, false},
		{"nil", nil, "internal", errs.ClassUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, errs.Code(tt.err))
			assert.Equal(t, tt.class, errs.ClassOf(tt.err))
			assert.Equal(t, tt.conflict, errs.IsConflict(tt.err))
		})
	}
}

func TestClassification_JoinedErrors(t *testing.T) {
	err := errors.Join(errs.NewValueIsRequiredError("name"), errs.NewObjectNotFoundError("product", "p-1"))

	assert.Equal(t, errs.ClassNotFound, errs.ClassOf(err))
}
