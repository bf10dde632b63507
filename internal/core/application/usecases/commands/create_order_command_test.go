package commands_test

import (
	"testing"

	"wms/internal/core/application/usecases/commands"
	"wms/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	soap, rice := uuid.New(), uuid.New()

	tests := []struct {
		name      string
		orderID   uuid.UUID
		reference string
		lines     []commands.OrderLineInput
		wantErr   error
	}{
		{
			name:      "valid",
			orderID:   uuid.New(),
			reference: "ORD-1",
			lines:     []commands.OrderLineInput{{ProductID: soap, Quantity: 3}, {ProductID: rice, Quantity: 1}},
		},
		{
			name:      "missing id",
			reference: "ORD-1",
			lines:     []commands.OrderLineInput{{ProductID: soap, Quantity: 3}},
			wantErr:   errs.ErrValueIsRequired,
		},
		{
			name:      "blank reference",
			orderID:   uuid.New(),
			reference: "   ",
			lines:     []commands.OrderLineInput{{ProductID: soap, Quantity: 3}},
			wantErr:   errs.ErrValueIsRequired,
		},
		{
			name:      "no lines",
			orderID:   uuid.New(),
			reference: "ORD-1",
			wantErr:   errs.ErrValueIsRequired,
		},
		{
			name:      "zero quantity",
			orderID:   uuid.New(),
			reference: "ORD-1",
			lines:     []commands.OrderLineInput{{ProductID: soap, Quantity: 0}},
			wantErr:   errs.ErrInvalidQuantity,
		},
		{
			name:      "product twice",
			orderID:   uuid.New(),
			reference: "ORD-1",
			lines:     []commands.OrderLineInput{{ProductID: soap, Quantity: 1}, {ProductID: soap, Quantity: 2}},
			wantErr:   errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateOrderCommand(tt.orderID, tt.reference, tt.lines)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			assert.Equal(t, tt.orderID, cmd.OrderID())
			assert.Equal(t, tt.reference, cmd.Reference())
			assert.Len(t, cmd.Lines(), len(tt.lines))
		})
	}
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
