package queries_test

import (
	"testing"

	"wms/internal/core/application/usecases/queries"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStockLevelsQuery_Valid(t *testing.T) {
	query := queries.NewGetStockLevelsQuery("")
	require.NoError(t, query.Validate())
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"stock levels", queries.GetStockLevelsQuery{}.Validate(), queries.ErrGetStockLevelsQueryIsNotConstructed},
		{"product lots", queries.GetProductLotsQuery{}.Validate(), queries.ErrGetProductLotsQueryIsNotConstructed},
		{"lot movements", queries.GetLotMovementsQuery{}.Validate(), queries.ErrGetLotMovementsQueryIsNotConstructed},
		{"order", queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed},
		{"carton", queries.GetCartonQuery{}.Validate(), queries.ErrGetCartonQueryIsNotConstructed},
		{"shipment", queries.GetShipmentQuery{}.Validate(), queries.ErrGetShipmentQueryIsNotConstructed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}
}

func TestQueries_RequireIdentifiers(t *testing.T) {
	_, err := queries.NewGetProductLotsQuery(uuid.Nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetLotMovementsQuery(uuid.Nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetOrderQuery(uuid.Nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetCartonQuery("   ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetShipmentQuery(uuid.Nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	query, err := queries.NewGetCartonQuery(" HP-20260310-1 ")
	require.NoError(t, err)
	assert.Equal(t, "HP-20260310-1", query.Code())
}
