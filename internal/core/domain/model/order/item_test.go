package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create item with valid fields", func(t *testing.T) {
		item, err := order.NewItem("SKU-1", decimal.NewFromInt(20), decimal.NewFromInt(100), 3)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "SKU-1", item.SKU())
		assert.Equal(t, "20", item.Price().String())
		assert.Equal(t, "100", item.GramsPerItem().String())
		assert.Equal(t, 3, item.Quantity())
	})

	t.Run("should accept zero weight and quantity", func(t *testing.T) {
		_, err := order.NewItem("SKU-1", decimal.Zero, decimal.Zero, 0)

		require.NoError(t, err)
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := order.NewItem(" ", decimal.NewFromInt(-1), decimal.NewFromInt(-5), -2)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "sku")
		assert.Contains(t, err.Error(), "price")
		assert.Contains(t, err.Error(), "gramsPerItem")
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var item order.Item

		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}
