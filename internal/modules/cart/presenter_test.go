package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saveur/storefront/internal/modules/currency"
)

func TestRender_EmptyCart(t *testing.T) {
	view := Render(nil, currency.EUR)

	assert.True(t, view.Empty)
	assert.Equal(t, currency.EUR, view.Currency)
	assert.Empty(t, view.Rows)
	assert.Zero(t, view.ItemCount)
	assert.Zero(t, view.Total)
	assert.Empty(t, view.TotalFormatted)
}

func TestRender(t *testing.T) {
	items := []LineItem{
		{Name: "Paneer Tikka", UnitPrice: 12.00, BasePrice: 12.00, Category: "starters", Quantity: 2},
		{Name: "Butter Chicken", UnitPrice: 18.50, BasePrice: 18.50, Category: "mains", Quantity: 1},
	}

	view := Render(items, currency.USD)

	assert.False(t, view.Empty)
	assert.Equal(t, 3, view.ItemCount)
	require.Len(t, view.Rows, 2)

	assert.Equal(t, "Paneer Tikka", view.Rows[0].Name)
	assert.Equal(t, 24.00, view.Rows[0].LineTotal)
	assert.Equal(t, "$24.00", view.Rows[0].LineTotalFormatted)
	assert.Equal(t, "$12.00", view.Rows[0].UnitPriceFormatted)

	assert.Equal(t, 18.50, view.Rows[1].LineTotal)

	assert.InDelta(t, 42.50, view.Total, 1e-9)
	assert.Equal(t, "$42.50", view.TotalFormatted)
}

func TestRender_FormatsInActiveCurrency(t *testing.T) {
	items := []LineItem{
		{Name: "Paneer Tikka", UnitPrice: 10.92, BasePrice: 12.00, Category: "starters", Quantity: 2},
	}

	view := Render(items, currency.EUR)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, "€10.92", view.Rows[0].UnitPriceFormatted)
	assert.Equal(t, "€21.84", view.TotalFormatted)
}
