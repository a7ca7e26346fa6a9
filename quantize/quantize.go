// Copyright (c) 2025 BVK Chaitanya

// Package quantize rounds asset amounts down to the precision accepted
// by the venue, using exact decimal arithmetic only.
package quantize

import (
	"github.com/shopspring/decimal"
)

// Step returns the smallest representable amount at the given number of
// decimal places, i.e. 10^-decimals.
func Step(decimals int) decimal.Decimal {
	return decimal.New(1, -int32(decimals))
}

// Size floors amount to an exact multiple of 10^-decimals, toward zero.
// The result is never larger than the input; a zero result means the
// input was below one step and is not actionable.
func Size(amount decimal.Decimal, decimals int) decimal.Decimal {
	return amount.Shift(int32(decimals)).Floor().Shift(-int32(decimals))
}

// WithMargin floors amount as Size does and then subtracts one step, so
// that an amount derived from a just-read balance stays strictly below
// it. Negative results are clamped to zero.
func WithMargin(amount decimal.Decimal, decimals int) decimal.Decimal {
	v := Size(amount, decimals).Sub(Step(decimals))
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
