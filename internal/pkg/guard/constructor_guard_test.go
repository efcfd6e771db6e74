package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

// parcel mimics how value objects in the domain embed the guard.
type parcel struct {
	sku   string
	grams int
	guard guard.ConstructorGuard
}

var errParcelNotConstructed = errors.New("parcel must be created via newParcel")

func newParcel(sku string, grams int) (parcel, error) {
	if sku == "" {
		return parcel{}, errors.New("sku is required")
	}
	if grams < 0 {
		return parcel{}, errors.New("grams cannot be negative")
	}
	return parcel{sku: sku, grams: grams, guard: guard.NewConstructorGuard()}, nil
}

func (p parcel) Validate() error {
	return p.guard.Validate(errParcelNotConstructed)
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	t.Run("constructor_output_validates", func(t *testing.T) {
		p, err := newParcel("SKU-1", 100)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, 100, p.grams)
	})

	t.Run("struct_literal_is_rejected", func(t *testing.T) {
		p := parcel{sku: "SKU-1", grams: 100}

		require.ErrorIs(t, p.Validate(), errParcelNotConstructed)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		p, err := newParcel("", 100)

		require.Error(t, err)
		require.ErrorIs(t, p.Validate(), errParcelNotConstructed)
	})

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		p, err := newParcel("SKU-1", 0)
		require.NoError(t, err)

		copied := p
		copied.grams = 5

		require.NoError(t, copied.Validate())
	})
}
