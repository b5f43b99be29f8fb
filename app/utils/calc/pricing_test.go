package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_ZeroDiscount(t *testing.T) {
	for _, subtotal := range []int64{0, 1, 250, 450, 100000} {
		sub := decimal.NewFromInt(subtotal)
		totals := ComputeTotals(sub, decimal.Zero)

		assert.True(t, totals.DiscountAmount.IsZero(), "subtotal %d: discount should be zero", subtotal)
		assert.True(t, totals.FinalTotal.Equal(sub), "subtotal %d: final total should equal subtotal", subtotal)
	}
}

func TestComputeTotals_TenPercentOffThousand(t *testing.T) {
	totals := ComputeTotals(decimal.NewFromInt(1000), decimal.NewFromInt(10))

	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(100)), "got discount %s", totals.DiscountAmount)
	assert.True(t, totals.FinalTotal.Equal(decimal.NewFromInt(900)), "got final total %s", totals.FinalTotal)
}

func TestComputeTotals_CheckoutScenario(t *testing.T) {
	// 250×1 + 100×2 with a 10% promo.
	totals := ComputeTotals(decimal.NewFromInt(450), decimal.NewFromInt(10))

	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(45)), "got discount %s", totals.DiscountAmount)
	assert.True(t, totals.FinalTotal.Equal(decimal.NewFromInt(405)), "got final total %s", totals.FinalTotal)
}

func TestComputeTotals_ExactDecimalArithmetic(t *testing.T) {
	// 12.5% of 199.99: no float drift, rounding is left to display code.
	totals := ComputeTotals(decimal.RequireFromString("199.99"), decimal.RequireFromString("12.5"))

	assert.True(t, totals.DiscountAmount.Equal(decimal.RequireFromString("24.998750")),
		"got discount %s", totals.DiscountAmount)
	assert.True(t, totals.FinalTotal.Equal(decimal.RequireFromString("174.991250")),
		"got final total %s", totals.FinalTotal)
}

func TestCalculateDiscount(t *testing.T) {
	got := CalculateDiscount(decimal.NewFromInt(450), decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(45)), "got %s", got)
}
