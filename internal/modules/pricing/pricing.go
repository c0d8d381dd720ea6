// Package pricing converts canonical USD amounts into display currencies
// and formats them for presentation. All functions are pure.
package pricing

import (
	"fmt"
	"math"

	"github.com/saveur/storefront/internal/modules/currency"
)

// Convert converts an amount denominated in USD into the target currency.
// The result is rounded half-up to 2 decimal places at the point of
// conversion. Rounding happens exactly once per conversion: callers must
// always convert from the canonical USD amount, never re-convert an already
// converted value, or rounding error compounds.
func Convert(amountUSD float64, target currency.Code) float64 {
	return round2(amountUSD * currency.Rate(target))
}

// Format renders an amount as the currency's symbol followed by the amount
// with exactly 2 fractional digits, e.g. "€21.84".
func Format(amount float64, c currency.Code) string {
	return fmt.Sprintf("%s%.2f", currency.Symbol(c), amount)
}

// round2 rounds half-up to 2 decimal places.
// math.Round is half-away-from-zero, which is half-up for the non-negative
// amounts handled here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
