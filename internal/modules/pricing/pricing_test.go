package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saveur/storefront/internal/modules/currency"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		target   currency.Code
		expected float64
	}{
		{name: "USD is identity", amount: 12.00, target: currency.USD, expected: 12.00},
		{name: "EUR conversion", amount: 12.00, target: currency.EUR, expected: 10.92},
		{name: "AED conversion", amount: 12.00, target: currency.AED, expected: 44.04},
		{name: "INR conversion", amount: 12.00, target: currency.INR, expected: 997.44},
		{name: "rounds half up", amount: 8.50, target: currency.EUR, expected: 7.74}, // 7.735 -> 7.74
		{name: "rounds half up again", amount: 14.50, target: currency.EUR, expected: 13.20}, // 13.195 -> 13.20
		{name: "zero", amount: 0, target: currency.EUR, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Convert(tt.amount, tt.target), 1e-9)
		})
	}
}

func TestConvert_RoundsExactlyOnce(t *testing.T) {
	// 12.00 USD at EUR 0.91 is 10.92, not a re-rounded intermediate
	got := Convert(12.00, currency.EUR)
	assert.InDelta(t, 10.92, got, 1e-9)

	// Two items' worth computed from the converted unit price
	assert.InDelta(t, 21.84, got*2, 1e-9)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		target   currency.Code
		expected string
	}{
		{name: "USD", amount: 12.0, target: currency.USD, expected: "$12.00"},
		{name: "EUR", amount: 21.84, target: currency.EUR, expected: "€21.84"},
		{name: "INR", amount: 997.44, target: currency.INR, expected: "₹997.44"},
		{name: "AED", amount: 44.04, target: currency.AED, expected: "د.إ44.04"},
		{name: "pads to two decimals", amount: 7.5, target: currency.USD, expected: "$7.50"},
		{name: "zero", amount: 0, target: currency.USD, expected: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.amount, tt.target))
		})
	}
}
