// Package orders implements checkout and order tracking. Placed orders are
// written to orders.db, which runs with the ledger profile: the order trail
// is append-only and never rewritten.
package orders

import (
	"time"

	"github.com/saveur/storefront/internal/modules/currency"
)

// Customer is the checkout contact information
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Item is one ordered line, frozen at checkout time. UnitPrice is in the
// order's currency; BasePrice is the canonical USD price.
type Item struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unit_price"`
	BasePrice float64 `json:"base_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Order is a placed order
type Order struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference"`
	Customer      Customer      `json:"customer"`
	PaymentMethod string        `json:"payment_method"`
	Currency      currency.Code `json:"currency"`
	Total         float64       `json:"total"`
	PlacedAt      time.Time     `json:"placed_at"`
	Items         []Item        `json:"items"`
}

// Confirmation is returned to the UI after a successful checkout
type Confirmation struct {
	Reference         string `json:"reference"`
	CustomerName      string `json:"customer_name"`
	TotalFormatted    string `json:"total_formatted"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

// TrackingStage is one step of the delivery timeline
type TrackingStage struct {
	Status    string `json:"status"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

// Tracking is the delivery timeline for one order
type Tracking struct {
	Reference string          `json:"reference"`
	Stages    []TrackingStage `json:"stages"`
	Delivered bool            `json:"delivered"`
}
