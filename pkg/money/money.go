// Package money holds the canonical monetary arithmetic used across
// generation, validation, and warehouse loading. Every component that
// computes or re-checks a derived amount goes through these helpers so
// the stored values and the recomputed values always agree.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places using half-even rounding.
func Round2(value float64) float64 {
	return decimal.NewFromFloat(value).RoundBank(2).InexactFloat64()
}

// LineTotal computes the discounted value of one transaction item:
// quantity * unitPrice * (1 - discount/100), rounded to 2 decimals.
func LineTotal(quantity int, unitPrice float64, discountPercentage int) float64 {
	qty := decimal.NewFromInt(int64(quantity))
	price := decimal.NewFromFloat(unitPrice)
	factor := decimal.NewFromInt(100 - int64(discountPercentage)).Div(decimal.NewFromInt(100))
	return qty.Mul(price).Mul(factor).RoundBank(2).InexactFloat64()
}

// Profit computes the margin on one sold line: line_total minus the
// replacement cost of the shipped quantity, rounded to 2 decimals.
func Profit(lineTotal float64, quantity int, unitCost float64) float64 {
	cost := decimal.NewFromFloat(unitCost).Mul(decimal.NewFromInt(int64(quantity)))
	return decimal.NewFromFloat(lineTotal).Sub(cost).RoundBank(2).InexactFloat64()
}
