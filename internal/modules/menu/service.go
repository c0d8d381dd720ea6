package menu

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/modules/currency"
	"github.com/saveur/storefront/internal/modules/pricing"
)

// Service renders the menu for a display currency, serving from the view
// cache when possible
type Service struct {
	repo  *Repository
	cache *ViewCache
	log   zerolog.Logger
}

// NewService creates a new menu service. cache may be nil to disable caching.
func NewService(repo *Repository, cache *ViewCache, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "menu").Logger(),
	}
}

// Menu returns the full menu with prices converted into the given currency,
// grouped by category in display order.
func (s *Service) Menu(c currency.Code) (View, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(string(c)); ok {
			s.log.Debug().Str("currency", string(c)).Msg("Menu view served from cache")
			return *cached, nil
		}
	}

	dishes, err := s.repo.All()
	if err != nil {
		return View{}, fmt.Errorf("failed to load menu: %w", err)
	}

	view := render(dishes, c)

	if s.cache != nil {
		s.cache.Put(string(c), view)
	}
	return view, nil
}

// Category returns one category's dishes converted into the given currency
func (s *Service) Category(name string, c currency.Code) ([]DishView, error) {
	dishes, err := s.repo.ListByCategory(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu category: %w", err)
	}

	views := make([]DishView, 0, len(dishes))
	for _, d := range dishes {
		views = append(views, renderDish(d, c))
	}
	return views, nil
}

// Dish resolves a dish by name. Returns (nil, nil) when unknown.
func (s *Service) Dish(name string) (*Dish, error) {
	return s.repo.GetByName(name)
}

// render groups dishes by category in display order, converting each price
func render(dishes []Dish, c currency.Code) View {
	byCategory := make(map[string][]DishView)
	for _, d := range dishes {
		byCategory[d.Category] = append(byCategory[d.Category], renderDish(d, c))
	}

	view := View{Currency: c}
	for _, cat := range Categories() {
		if len(byCategory[cat]) == 0 {
			continue
		}
		view.Categories = append(view.Categories, CategoryView{
			Category: cat,
			Dishes:   byCategory[cat],
		})
	}
	return view
}

func renderDish(d Dish, c currency.Code) DishView {
	price := pricing.Convert(d.PriceUSD, c)
	return DishView{
		ID:             d.ID,
		Name:           d.Name,
		Category:       d.Category,
		Description:    d.Description,
		PriceUSD:       d.PriceUSD,
		Price:          price,
		PriceFormatted: pricing.Format(price, c),
	}
}
