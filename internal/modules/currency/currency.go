// Package currency defines the closed set of supported currencies and their
// exchange rates against the base currency (USD).
package currency

import "fmt"

// Code identifies a supported currency
type Code string

const (
	USD Code = "USD" // Base currency, rate is always 1
	EUR Code = "EUR"
	AED Code = "AED"
	INR Code = "INR"
)

// rates maps each currency to its exchange rate against USD.
// All canonical prices are stored in USD; display prices are derived
// through these rates.
var rates = map[Code]float64{
	USD: 1,
	EUR: 0.91,
	AED: 3.67,
	INR: 83.12,
}

// symbols maps each currency to its display symbol
var symbols = map[Code]string{
	USD: "$",
	EUR: "€",
	AED: "د.إ",
	INR: "₹",
}

// Codes returns the supported currency codes in a stable order
func Codes() []Code {
	return []Code{USD, EUR, AED, INR}
}

// Parse validates an externally supplied currency code.
// This is the gate all user input must pass before Rate or Symbol is called.
func Parse(s string) (Code, error) {
	c := Code(s)
	if _, ok := rates[c]; !ok {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// Rate returns the exchange rate from USD to the given currency.
// The rate table is total over the closed Code set; an unknown code here is
// a configuration error, not a runtime condition, so it panics.
func Rate(c Code) float64 {
	rate, ok := rates[c]
	if !ok {
		panic(fmt.Sprintf("currency: no exchange rate configured for %q", c))
	}
	return rate
}

// Symbol returns the display symbol for the given currency.
// Same contract as Rate: unknown codes panic.
func Symbol(c Code) string {
	symbol, ok := symbols[c]
	if !ok {
		panic(fmt.Sprintf("currency: no symbol configured for %q", c))
	}
	return symbol
}
