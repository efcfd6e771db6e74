package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Received))
	assert.Equal(t, 2, int(order.Quoted))
	assert.Equal(t, 3, int(order.Booked))
	assert.Equal(t, 4, int(order.Cancelled))
}

func TestStatus_StringAndParse(t *testing.T) {
	for _, status := range order.Statuses() {
		t.Run(fmt.Sprintf("should round trip %s", status), func(t *testing.T) {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "UNKNOWN", "received", "SHIPPED"} {
			status, err := order.ParseStatus(name)

			require.Error(t, err)
			assert.Equal(t, order.Unknown, status)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should render invalid values as UNKNOWN", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.Status(42).String())
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range order.Statuses() {
		require.NoError(t, status.Validate())
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	quote := func(s order.Status) (order.Status, error) { return s.Quote() }
	book := func(s order.Status) (order.Status, error) { return s.Book() }
	cancel := func(s order.Status) (order.Status, error) { return s.Cancel() }

	tests := []struct {
		name    string
		from    order.Status
		apply   transition
		want    order.Status
		wantErr bool
	}{
		{"quote from received", order.Received, quote, order.Quoted, false},
		{"quote from quoted", order.Quoted, quote, order.Quoted, false},
		{"quote from booked", order.Booked, quote, 0, true},
		{"quote from cancelled", order.Cancelled, quote, 0, true},
		{"quote from unknown", order.Unknown, quote, 0, true},
		{"book from received", order.Received, book, order.Booked, false},
		{"book from quoted", order.Quoted, book, order.Booked, false},
		{"book from booked", order.Booked, book, 0, true},
		{"book from cancelled", order.Cancelled, book, 0, true},
		{"cancel from received", order.Received, cancel, order.Cancelled, false},
		{"cancel from quoted", order.Quoted, cancel, order.Cancelled, false},
		{"cancel from booked", order.Booked, cancel, 0, true},
		{"cancel from cancelled", order.Cancelled, cancel, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Received.IsTerminal())
	assert.False(t, order.Quoted.IsTerminal())
	assert.True(t, order.Booked.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}
