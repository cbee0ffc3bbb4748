package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice string
		want      string
	}{
		{"whole amounts", 5, "10.00", "50.00"},
		{"cents", 3, "2.50", "7.50"},
		{"half-up rounding", 3, "0.335", "1.01"},
		{"zero price", 10, "0.00", "0.00"},
		{"single unit", 1, "19.99", "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := decimal.NewFromString(tt.unitPrice)
			require.NoError(t, err)

			got := Subtotal(tt.quantity, price)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestTotal(t *testing.T) {
	lines := []LineInput{
		{Quantity: 5, UnitPrice: decimal.RequireFromString("10.00")},
		{Quantity: 2, UnitPrice: decimal.RequireFromString("3.25")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("0.99")},
	}

	subtotals, total := Total(lines)

	require.Len(t, subtotals, 3)
	assert.True(t, subtotals[0].Equal(decimal.RequireFromString("50.00")))
	assert.True(t, subtotals[1].Equal(decimal.RequireFromString("6.50")))
	assert.True(t, subtotals[2].Equal(decimal.RequireFromString("0.99")))
	assert.True(t, total.Equal(decimal.RequireFromString("57.49")))
}

func TestTotalEmpty(t *testing.T) {
	subtotals, total := Total(nil)
	assert.Empty(t, subtotals)
	assert.True(t, total.IsZero())
}

func TestTotalEqualsSumOfSubtotals(t *testing.T) {
	lines := []LineInput{
		{Quantity: 7, UnitPrice: decimal.RequireFromString("1.13")},
		{Quantity: 3, UnitPrice: decimal.RequireFromString("4.445")},
		{Quantity: 11, UnitPrice: decimal.RequireFromString("0.07")},
	}

	subtotals, total := Total(lines)

	sum := decimal.Zero
	for _, s := range subtotals {
		sum = sum.Add(s)
	}
	assert.True(t, total.Equal(sum), "total %s must equal sum of subtotals %s", total, sum)
}
