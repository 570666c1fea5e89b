// Package money centralizes monetary parsing, rounding and formatting.
//
// All balance arithmetic in the application rounds to cents after every
// operation so that no sub-cent residue accumulates across mutations.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var halfCent = decimal.New(5, -1)

// RoundCents rounds a value to two decimal places, half up: an exact
// half-cent rounds toward positive infinity, so -10.005 becomes -10.00
// while 10.005 becomes 10.01. This matches the Math.round semantics the
// balance arithmetic was specified against.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(halfCent).Floor().Shift(-2)
}

// ParseAmountOrZero converts user-entered text into an amount, degrading to
// zero on anything it cannot understand. It never fails: the payment form
// contract is that malformed input becomes a zero-amount payment, and any
// stricter validation belongs to the UI boundary.
//
// Accepted forms include "25", "25.50", "25,50" (Finnish decimal comma) and
// an optional trailing "€" or "EUR".
func ParseAmountOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	if n := len(s); n >= 3 && strings.EqualFold(s[n-3:], "EUR") {
		s = s[:n-3]
	}
	s = strings.TrimSpace(s)

	// Decimal comma, but only when it cannot be a thousands separator.
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatEUR renders an amount the way the original app shows it on screen:
// two decimals, decimal comma, euro sign.
func FormatEUR(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + " €"
}
