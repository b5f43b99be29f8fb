package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var taka = accounting.Accounting{Symbol: "৳", Precision: 2, Thousand: ",", Decimal: "."}

// Taka renders an amount with the Bangladeshi taka glyph and two decimal
// places, e.g. ৳1,250.00. Display only: stored amounts stay unrounded.
func Taka(amount decimal.Decimal) string {
	return taka.FormatMoneyDecimal(amount)
}
