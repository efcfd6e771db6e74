package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateQuoteCommand(t *testing.T) {
	t.Run("should keep carriers in request order", func(t *testing.T) {
		cmd, err := commands.NewCreateQuoteCommand(kernel.MustOrderID("1"), []carrier.Code{carrier.FEDEX, carrier.UPS})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, []carrier.Code{carrier.FEDEX, carrier.UPS}, cmd.Carriers())
	})

	t.Run("should require carriers", func(t *testing.T) {
		_, err := commands.NewCreateQuoteCommand(kernel.MustOrderID("1"), nil)

		require.ErrorIs(t, err, commands.ErrCarriersAreRequired)
	})

	t.Run("should reject unknown carrier", func(t *testing.T) {
		_, err := commands.NewCreateQuoteCommand(kernel.MustOrderID("1"), []carrier.Code{carrier.UPS, carrier.Unknown})

		require.ErrorIs(t, err, carrier.ErrUnknownCarrier)
	})
}

func TestNewBookCarrierCommand(t *testing.T) {
	cmd, err := commands.NewBookCarrierCommand(kernel.MustOrderID("1"), carrier.USPS)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, carrier.USPS, cmd.Carrier())

	_, err = commands.NewBookCarrierCommand(kernel.OrderID{}, carrier.Unknown)
	require.ErrorIs(t, err, kernel.ErrOrderIDIsNotConstructed)
	require.ErrorIs(t, err, carrier.ErrUnknownCarrier)

	require.ErrorIs(t, commands.BookCarrierCommand{}.Validate(), commands.ErrBookCarrierCommandIsNotConstructed)
}

func TestNewCancelOrderCommand(t *testing.T) {
	cmd, err := commands.NewCancelOrderCommand(kernel.MustOrderID("9"))
	require.NoError(t, err)
	assert.Equal(t, "9", cmd.OrderID().String())

	_, err = commands.NewCancelOrderCommand(kernel.OrderID{})
	require.ErrorIs(t, err, kernel.ErrOrderIDIsNotConstructed)

	require.ErrorIs(t, commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
}
