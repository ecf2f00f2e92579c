// Package money keeps price arithmetic exact. Prices live in the
// database as numeric(10,2) and cross the API as float64; all sums and
// multiplications go through decimals so repeated splits and recomputes
// cannot drift.
package money

import "github.com/shopspring/decimal"

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// LineTotal returns price*quantity rounded to two decimal places.
func LineTotal(price float64, quantity int) float64 {
	f, _ := decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		Float64()
	return f
}

// Sum adds the values and rounds the result to two decimal places.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// WithVAT applies the given VAT rate (e.g. 0.23) and rounds to two
// decimal places.
func WithVAT(v, rate float64) float64 {
	f, _ := decimal.NewFromFloat(v).
		Mul(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(rate))).
		Round(2).
		Float64()
	return f
}
