package ledger

import (
	"testing"

	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceTwoItemsUnderEachPolicy(t *testing.T) {
	lines := []Line{{UnitPrice: 1000, Quantity: 2}, {UnitPrice: 500, Quantity: 1}}

	noTax, err := NewPricingPolicy("none", "0.10")
	require.NoError(t, err)
	totals, err := noTax.Price(lines)
	require.NoError(t, err)
	assert.Equal(t, Totals{Subtotal: 2500, Tax: 0, Total: 2500}, totals)

	flat, err := NewPricingPolicy("flat10", "0.10")
	require.NoError(t, err)
	totals, err = flat.Price(lines)
	require.NoError(t, err)
	assert.Equal(t, Totals{Subtotal: 2500, Tax: 250, Total: 2750}, totals)
	assert.Equal(t, enum.TaxPolicyFlat, flat.Name())
}

func TestTotalEqualsSumOfLines(t *testing.T) {
	lines := []Line{{UnitPrice: 333, Quantity: 3}, {UnitPrice: 1, Quantity: 7}, {UnitPrice: 0, Quantity: 4}}

	totals, err := NoTax().Price(lines)
	require.NoError(t, err)

	var sum int64
	for _, l := range lines {
		sum += l.Total()
	}
	assert.Equal(t, sum, totals.Subtotal)
	assert.Equal(t, sum, totals.Total)
}

func TestTaxRoundsHalfUp(t *testing.T) {
	flat, err := NewPricingPolicy("flat10", "0.10")
	require.NoError(t, err)

	assert.Equal(t, int64(1), flat.Tax(5))
	assert.Equal(t, int64(0), flat.Tax(4))
	assert.Equal(t, int64(123), flat.Tax(1234))
}

func TestPriceRejectsBadLines(t *testing.T) {
	_, err := NoTax().Price(nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NoTax().Price([]Line{{UnitPrice: 100, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NoTax().Price([]Line{{UnitPrice: -1, Quantity: 1}})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestNewPricingPolicyErrors(t *testing.T) {
	_, err := NewPricingPolicy("vat", "0.16")
	assert.Error(t, err)

	_, err = NewPricingPolicy("flat10", "ten percent")
	assert.Error(t, err)

	_, err = NewPricingPolicy("flat10", "-0.1")
	assert.ErrorIs(t, err, ErrNegativeTaxRate)
}
