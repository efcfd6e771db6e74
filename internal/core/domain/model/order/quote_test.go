package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuote(t *testing.T) {
	q, err := order.NewQuote(carrier.FEDEX, kernel.CentsFromInt(1003))

	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, carrier.FEDEX, q.Carrier())
	assert.Equal(t, "1003", q.PriceCents().String())
	assert.True(t, q.IsEqual(newQuote(t, carrier.FEDEX, 1003)))
	assert.False(t, q.IsEqual(newQuote(t, carrier.UPS, 1003)))
}

func TestNewQuote_Rejects(t *testing.T) {
	_, err := order.NewQuote(carrier.Unknown, kernel.CentsFromInt(1))
	require.ErrorIs(t, err, carrier.ErrUnknownCarrier)

	_, err = order.NewQuote(carrier.UPS, kernel.Cents{})
	require.ErrorIs(t, err, kernel.ErrCentsIsNotConstructed)

	var zero order.Quote
	require.ErrorIs(t, zero.Validate(), order.ErrQuoteIsNotConstructed)
}
