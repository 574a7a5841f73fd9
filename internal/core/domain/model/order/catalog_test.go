package order_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("should reject non positive conversion factors", func(t *testing.T) {
		_, err := order.NewCatalog(money(t, 2), money(t, 4), 0, -1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "eggs per box is invalid")
		assert.Contains(t, err.Error(), "liters per can is invalid")
	})

	t.Run("should reject unconstructed prices", func(t *testing.T) {
		_, err := order.NewCatalog(kernel.Money{}, money(t, 4), 20, 3)

		assert.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
	})
}

func TestCatalog_Quote(t *testing.T) {
	tests := []struct {
		name      string
		product   order.Product
		quantity  int
		wantTotal int64
		wantUnits int
	}{
		{name: "two boxes of eggs", product: order.Eggs, quantity: 2, wantTotal: 4, wantUnits: 40},
		{name: "one box of eggs", product: order.Eggs, quantity: 1, wantTotal: 2, wantUnits: 20},
		{name: "one can of oil", product: order.Oil, quantity: 1, wantTotal: 4, wantUnits: 3},
		{name: "five cans of oil", product: order.Oil, quantity: 5, wantTotal: 20, wantUnits: 15},
	}

	catalog := order.DefaultCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := catalog.Quote(tt.product, tt.quantity)

			require.NoError(t, err)
			assert.Equal(t, tt.product, line.Product())
			assert.Equal(t, tt.quantity, line.Quantity())
			assert.True(t, line.LineTotal().IsEqual(money(t, tt.wantTotal)), "total was %s", line.LineTotal())
			assert.Equal(t, tt.wantUnits, line.DerivedUnits())
		})
	}

	t.Run("should use configured prices", func(t *testing.T) {
		custom, err := order.NewCatalog(money(t, 3), money(t, 7), 12, 5)
		require.NoError(t, err)

		line, err := custom.Quote(order.Oil, 2)

		require.NoError(t, err)
		assert.True(t, line.LineTotal().IsEqual(money(t, 14)))
		assert.Equal(t, 10, line.DerivedUnits())
	})

	t.Run("should reject an unknown product", func(t *testing.T) {
		_, err := catalog.Quote(order.UnknownProduct, 1)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseProduct(t *testing.T) {
	p, err := order.ParseProduct("oil")
	require.NoError(t, err)
	assert.Equal(t, order.Oil, p)

	_, err = order.ParseProduct("milk")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
