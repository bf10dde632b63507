package reference_test

import (
	"testing"

	"wms/internal/core/domain/model/reference"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReceipt(t *testing.T) {
	assert.Equal(t, "26-07-CRO-03", reference.FormatReceipt(2026, 7, "Croix-Rouge", 3))
	assert.Equal(t, "26-112-XXX-00", reference.FormatReceipt(2026, 112, "", 0))
	assert.Equal(t, "26-01-EAU-01", reference.FormatReceipt(2026, 1, "Éau", 1))
}

func TestParseReceipt(t *testing.T) {
	parsed, ok := reference.ParseReceipt("26-104-ABC-12")
	require.True(t, ok)
	assert.Equal(t, reference.ReceiptReference{YearPrefix: "26", Sequence: 104, DonorCode: "ABC", DonorCount: 12}, parsed)

	for _, bad := range []string{"", "26-1-ABC-01", "26-01-abc-01", "2026-01-ABC-01", "26-01-ABCD-01"} {
		_, ok := reference.ParseReceipt(bad)
		assert.False(t, ok, bad)
	}
}

func TestMaxReceiptSequence(t *testing.T) {
	refs := []string{"26-03-ABC-01", "26-11-XYZ-04", "25-40-ABC-09", "garbage", "26-07-ABC-02"}
	assert.Equal(t, 11, reference.MaxReceiptSequence(2026, refs))
	assert.Equal(t, 4, reference.MaxDonorCount(2026, refs))
	assert.Zero(t, reference.MaxReceiptSequence(2027, refs))
}

func TestShipmentReferences(t *testing.T) {
	assert.Equal(t, "260042", reference.FormatShipment(2026, 42))

	seq, ok := reference.ParseShipment(2026, "260042")
	require.True(t, ok)
	assert.Equal(t, 42, seq)

	for _, bad := range []string{"250042", "26004", "26A042", "2600421"} {
		_, ok := reference.ParseShipment(2026, bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, 9, reference.MaxShipmentSequence(2026, []string{"260003", "260009", "259999", "x"}))
}

func TestCounter(t *testing.T) {
	c, err := reference.NewCounter(reference.ShipmentScope(2026), 4)
	require.NoError(t, err)

	c.Raise(2)
	assert.Equal(t, 5, c.Next())
	c.Raise(9)
	assert.Equal(t, 10, c.Next())
	assert.Equal(t, 10, c.LastNumber())

	_, err = reference.NewCounter(reference.DonorScope(2026, uuid.Nil), 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = reference.NewCounter(reference.Scope{Year: 2026}, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestScope_Key(t *testing.T) {
	donor := uuid.MustParse("0b7e7dd0-5d5e-4a44-9a43-5b4d7f1d9a01")
	assert.Equal(t, "receipt:2026", reference.ReceiptScope(2026).Key())
	assert.Equal(t, "shipment:2026", reference.ShipmentScope(2026).Key())
	assert.Equal(t, "receipt_donor:2026:"+donor.String(), reference.DonorScope(2026, donor).Key())

	k, err := reference.ParseKind("receipt_donor")
	require.NoError(t, err)
	assert.Equal(t, reference.KindReceiptDonor, k)
}
