package calc

import "github.com/shopspring/decimal"

// Totals is the checkout price breakdown for one subtotal.
type Totals struct {
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
}

func CalculateDiscount(subtotal, discountPercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
}

// ComputeTotals applies a percentage discount to a subtotal. The result is
// exact decimal arithmetic; rounding happens only at display time.
func ComputeTotals(subtotal, discountPercent decimal.Decimal) Totals {
	discountAmount := CalculateDiscount(subtotal, discountPercent)

	return Totals{
		DiscountAmount: discountAmount,
		FinalTotal:     subtotal.Sub(discountAmount),
	}
}
