package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are stored as DECIMAL(10,2).
const (
	moneyMaxExponent = 8
	moneyMinExponent = -32
)

var moneyLimit = decimal.New(1, moneyMaxExponent)

// NormalizeMoney parses a numeric string and returns it with exactly two
// decimals. ok is false for empty, non-numeric or out-of-range input.
func NormalizeMoney(value string) (string, bool) {
	d, ok := parseMoney(value)
	if !ok {
		return "", false
	}
	// Bound the exponent before anything rescales the coefficient.
	if d.Exponent() > moneyMaxExponent || d.Exponent() < moneyMinExponent {
		return "", false
	}
	d = d.Round(2)
	if d.Abs().GreaterThanOrEqual(moneyLimit) {
		return "", false
	}
	return d.StringFixed(2), true
}

// IsNegativeMoney reports whether a normalized amount is below zero.
func IsNegativeMoney(normalized string) bool {
	d, ok := parseMoney(normalized)
	return ok && d.IsNegative()
}

// FormatMoney re-renders a stored amount with two decimals. Unparsable values
// are returned trimmed but otherwise untouched.
func FormatMoney(stored string) string {
	d, ok := parseMoney(stored)
	if !ok {
		return strings.TrimSpace(stored)
	}
	return d.StringFixed(2)
}

func parseMoney(value string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
