// Package menu provides the dish catalog and per-currency menu views.
package menu

import "github.com/saveur/storefront/internal/modules/currency"

// Dish is a single catalog entry. PriceUSD is the canonical price; converted
// prices are derived per request or served from the view cache.
type Dish struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	PriceUSD    float64 `json:"price_usd"`
	Description string  `json:"description"`
}

// Categories returns the menu categories in display order
func Categories() []string {
	return []string{"starters", "mains", "desserts", "beverages"}
}

// DishView is a dish with its price converted into a display currency
type DishView struct {
	ID             int64   `json:"id" msgpack:"id"`
	Name           string  `json:"name" msgpack:"name"`
	Category       string  `json:"category" msgpack:"category"`
	Description    string  `json:"description" msgpack:"description"`
	PriceUSD       float64 `json:"price_usd" msgpack:"price_usd"`
	Price          float64 `json:"price" msgpack:"price"`
	PriceFormatted string  `json:"price_formatted" msgpack:"price_formatted"`
}

// CategoryView groups converted dishes under their category
type CategoryView struct {
	Category string     `json:"category" msgpack:"category"`
	Dishes   []DishView `json:"dishes" msgpack:"dishes"`
}

// View is the full menu rendered for one display currency
type View struct {
	Currency   currency.Code  `json:"currency" msgpack:"currency"`
	Categories []CategoryView `json:"categories" msgpack:"categories"`
}
