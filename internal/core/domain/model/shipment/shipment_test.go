package shipment_test

import (
	"testing"
	"time"

	"wms/internal/core/domain/model/shipment"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShipment(t *testing.T) {
	s, err := shipment.NewShipment(uuid.New(), "260001")
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusDraft, s.Status())
	assert.False(t, s.IsLocked())

	_, err = shipment.NewShipment(uuid.Nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestShipment_SyncReadiness(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	s, err := shipment.NewShipment(uuid.New(), "260001")
	require.NoError(t, err)

	assert.True(t, s.SyncReadiness(2, 1, now))
	assert.Equal(t, shipment.StatusPicking, s.Status())
	assert.Nil(t, s.ReadyAt())

	s.SyncReadiness(2, 2, now)
	assert.Equal(t, shipment.StatusPacked, s.Status())
	require.NotNil(t, s.ReadyAt())
	assert.Equal(t, now, *s.ReadyAt())

	assert.False(t, s.SyncReadiness(2, 2, now.Add(time.Hour)))
	assert.Equal(t, now, *s.ReadyAt(), "ready time is kept while packed")

	s.SyncReadiness(0, 0, now)
	assert.Equal(t, shipment.StatusDraft, s.Status())
	assert.Nil(t, s.ReadyAt())
}

func TestShipment_Locking(t *testing.T) {
	s, err := shipment.NewShipment(uuid.New(), "260002")
	require.NoError(t, err)

	require.NoError(t, s.Advance(shipment.StatusPlanned))
	assert.True(t, s.IsLocked())
	require.ErrorIs(t, s.EnsureEditable(), errs.ErrShipmentLocked)
	require.ErrorIs(t, s.Advance(shipment.StatusPlanned), errs.ErrInvalidTransition)

	assert.False(t, s.SyncReadiness(1, 0, time.Now()))
	assert.Equal(t, shipment.StatusPlanned, s.Status())

	disputed, err := shipment.NewShipment(uuid.New(), "260003")
	require.NoError(t, err)
	disputed.SetDisputed(true)
	require.ErrorIs(t, disputed.EnsureEditable(), errs.ErrShipmentLocked)
}
