// Copyright (c) 2025 BVK Chaitanya

package quantize

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSize(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int
		want     string
	}{
		{"123.7", 0, "123"},
		{"123.999", 0, "123"},
		{"1.23456789", 4, "1.2345"},
		{"0.00009", 4, "0"},
		{"0.0001", 4, "0.0001"},
		{"50", 8, "50"},
		{"50.000000019", 8, "50.00000001"},
		{"0", 2, "0"},
	}
	for _, test := range tests {
		got := Size(d(test.amount), test.decimals)
		if !got.Equal(d(test.want)) {
			t.Errorf("Size(%s, %d): want %s got %s", test.amount, test.decimals, test.want, got)
		}
	}
}

func TestSizeProperties(t *testing.T) {
	amounts := []string{"0.1", "1.05", "99.999999995", "12345.678901", "0.00000001"}
	for decimals := 0; decimals <= 8; decimals++ {
		step := Step(decimals)
		for _, a := range amounts {
			amount := d(a)
			got := Size(amount, decimals)
			if got.GreaterThan(amount) {
				t.Fatalf("Size(%s, %d) = %s is above the input", a, decimals, got)
			}
			if !got.Mod(step).IsZero() {
				t.Fatalf("Size(%s, %d) = %s is not a multiple of %s", a, decimals, got, step)
			}
			if amount.Sub(got).GreaterThanOrEqual(step) {
				t.Fatalf("Size(%s, %d) = %s dropped a full step", a, decimals, got)
			}
		}
	}
}

func TestWithMargin(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int
		want     string
	}{
		{"50.00000003", 8, "50.00000002"},
		{"50.000000035", 8, "50.00000002"},
		{"25.5", 6, "25.499999"},
		{"0.00000001", 8, "0"},
		{"0.000000009", 8, "0"},
		{"0", 8, "0"},
	}
	for _, test := range tests {
		got := WithMargin(d(test.amount), test.decimals)
		if !got.Equal(d(test.want)) {
			t.Errorf("WithMargin(%s, %d): want %s got %s", test.amount, test.decimals, test.want, got)
		}
	}
}

func TestWithMarginBound(t *testing.T) {
	amounts := []string{"0.5", "1", "100.123456789", "7.00000001"}
	for decimals := 0; decimals <= 8; decimals++ {
		step := Step(decimals)
		for _, a := range amounts {
			amount := d(a)
			got := WithMargin(amount, decimals)
			if got.IsNegative() {
				t.Fatalf("WithMargin(%s, %d) = %s is negative", a, decimals, got)
			}
			if got.IsPositive() && !amount.Sub(got).GreaterThanOrEqual(step) {
				t.Fatalf("WithMargin(%s, %d) = %s is not a full step below the input", a, decimals, got)
			}
			if !got.Mod(step).IsZero() {
				t.Fatalf("WithMargin(%s, %d) = %s is not a multiple of %s", a, decimals, got, step)
			}
		}
	}
}
