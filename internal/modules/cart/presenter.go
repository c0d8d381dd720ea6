package cart

import (
	"github.com/saveur/storefront/internal/modules/currency"
	"github.com/saveur/storefront/internal/modules/pricing"
)

// Row is one rendered cart line
type Row struct {
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unit_price"`
	UnitPriceFormatted string  `json:"unit_price_formatted"`
	LineTotal          float64 `json:"line_total"`
	LineTotalFormatted string  `json:"line_total_formatted"`
}

// View is the renderable state of the cart, derived after every mutation.
// An empty cart is a distinct state: Empty is true, Rows is absent and
// TotalFormatted is empty, so consumers show a placeholder and hide the
// totals footer instead of painting a zero-total list.
type View struct {
	Empty          bool          `json:"empty"`
	ItemCount      int           `json:"item_count"`
	Currency       currency.Code `json:"currency"`
	Rows           []Row         `json:"rows,omitempty"`
	Total          float64       `json:"total"`
	TotalFormatted string        `json:"total_formatted,omitempty"`
}

// Render derives the view from the given line items and active currency.
// Pure: no mutation, no I/O.
func Render(items []LineItem, c currency.Code) View {
	if len(items) == 0 {
		return View{Empty: true, Currency: c}
	}

	view := View{
		Currency: c,
		Rows:     make([]Row, 0, len(items)),
	}

	for _, item := range items {
		lineTotal := item.UnitPrice * float64(item.Quantity)
		view.ItemCount += item.Quantity
		view.Total += lineTotal
		view.Rows = append(view.Rows, Row{
			Name:               item.Name,
			Category:           item.Category,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			UnitPriceFormatted: pricing.Format(item.UnitPrice, c),
			LineTotal:          lineTotal,
			LineTotalFormatted: pricing.Format(lineTotal, c),
		})
	}

	view.TotalFormatted = pricing.Format(view.Total, c)
	return view
}
