package stock_test

import (
	"testing"
	"time"

	"wms/internal/core/domain/model/kernel"
	"wms/internal/core/domain/model/stock"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T) *stock.Product {
	t.Helper()
	p, err := stock.NewProduct(uuid.New(), "SKU-1", "Compresses", "Médical")
	require.NoError(t, err)
	return p
}

func newLot(t *testing.T, onHand int) *stock.Lot {
	t.Helper()
	lot, err := stock.NewLot(uuid.New(), newProduct(t), onHand, kernel.MustParseLocation("PAR-A"), stock.LotAttributes{})
	require.NoError(t, err)
	return lot
}

func TestNewLot_DefaultStatus(t *testing.T) {
	product := newProduct(t)

	lot, err := stock.NewLot(uuid.New(), product, 5, kernel.MustParseLocation("PAR-A"), stock.LotAttributes{})
	require.NoError(t, err)
	assert.Equal(t, stock.LotStatusAvailable, lot.Status())
	assert.Equal(t, 5, lot.OnHand())
	assert.Zero(t, lot.Reserved())

	product.SetQuarantineDefault(true)
	lot, err = stock.NewLot(uuid.New(), product, 5, kernel.MustParseLocation("PAR-A"), stock.LotAttributes{})
	require.NoError(t, err)
	assert.Equal(t, stock.LotStatusQuarantined, lot.Status())

	lot, err = stock.NewLot(uuid.New(), product, 5, kernel.MustParseLocation("PAR-A"),
		stock.LotAttributes{Status: stock.LotStatusHold})
	require.NoError(t, err)
	assert.Equal(t, stock.LotStatusHold, lot.Status())
}

func TestNewLot_InvalidQuantity(t *testing.T) {
	for _, q := range []int{0, -3} {
		_, err := stock.NewLot(uuid.New(), newProduct(t), q, kernel.MustParseLocation("PAR-A"), stock.LotAttributes{})
		require.ErrorIs(t, err, errs.ErrInvalidQuantity)
	}
}

func TestRestoreLot_RejectsBrokenInvariant(t *testing.T) {
	_, err := stock.RestoreLot(uuid.New(), uuid.New(), "", 3, 4, stock.LotStatusAvailable,
		nil, nil, kernel.MustParseLocation("PAR-A"), nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestLot_Adjust(t *testing.T) {
	tests := []struct {
		name     string
		reserved int
		delta    int
		want     int
		wantErr  error
	}{
		{name: "increase", delta: 4, want: 14},
		{name: "decrease", delta: -4, want: 6},
		{name: "zero delta", delta: 0, wantErr: errs.ErrInvalidQuantity},
		{name: "negative on hand", delta: -11, wantErr: errs.ErrInsufficientStock},
		{name: "below reserved", reserved: 8, delta: -3, wantErr: errs.ErrReservedStockConflict},
		{name: "down to reserved", reserved: 8, delta: -2, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := newLot(t, 10)
			if tt.reserved > 0 {
				require.NoError(t, lot.Reserve(tt.reserved))
			}

			err := lot.Adjust(tt.delta)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 10, lot.OnHand())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, lot.OnHand())
		})
	}
}

func TestLot_MoveTo(t *testing.T) {
	lot := newLot(t, 1)

	require.ErrorIs(t, lot.MoveTo(kernel.MustParseLocation("PAR-A")), errs.ErrSameLocation)
	require.NoError(t, lot.MoveTo(kernel.MustParseLocation("PAR-B-01")))
	assert.Equal(t, "PAR-B-01", lot.Location().String())
}

func TestLot_ReserveAndConsume(t *testing.T) {
	lot := newLot(t, 10)

	require.NoError(t, lot.Reserve(6))
	assert.Equal(t, 4, lot.Available())
	require.ErrorIs(t, lot.Reserve(5), errs.ErrInsufficientStock)
	require.ErrorIs(t, lot.Take(5), errs.ErrInsufficientStock)

	require.NoError(t, lot.ConsumeReserved(4))
	assert.Equal(t, 6, lot.OnHand())
	assert.Equal(t, 2, lot.Reserved())

	lot.ReleaseReserved(5)
	assert.Zero(t, lot.Reserved(), "reserved is clamped at zero")
}

func TestLot_Expire(t *testing.T) {
	yesterday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lot, err := stock.NewLot(uuid.New(), newProduct(t), 1, kernel.MustParseLocation("PAR-A"),
		stock.LotAttributes{ExpiresOn: &yesterday})
	require.NoError(t, err)

	assert.False(t, lot.Expire(yesterday), "expires at the end of its expiry day")
	assert.True(t, lot.Expire(yesterday.AddDate(0, 0, 1)))
	assert.Equal(t, stock.LotStatusExpired, lot.Status())
	assert.False(t, lot.Expire(yesterday.AddDate(0, 0, 2)))
}
