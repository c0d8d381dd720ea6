// Package cart implements the shopping cart: an ordered list of line items
// with a selected display currency, persisted as a snapshot after every
// mutation.
//
// Canonical prices are always stored in USD. Display prices are derived from
// the canonical price at the active currency and are recomputed on every
// currency change and on every restore - a persisted display price is never
// trusted.
package cart

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/modules/currency"
	"github.com/saveur/storefront/internal/modules/pricing"
)

// ErrInvalidIndex is returned when an operation references a line item
// position that does not exist. The HTTP layer maps it to a 400 response.
var ErrInvalidIndex = errors.New("cart: line item index out of range")

// LineItem is a single entry in the cart. Name is the deduplication key:
// adding an already-present name increments its quantity. Quantity is always
// at least 1; a line reaching 0 is removed, never stored.
//
// The JSON field names are the persisted snapshot layout: "price" is the
// display price, "originalPrice" the canonical USD price.
type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	BasePrice float64 `json:"originalPrice"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// Snapshot is the persisted form of the cart
type Snapshot struct {
	Items    []LineItem    `json:"items"`
	Currency currency.Code `json:"currency"`
}

// Store owns the cart state. All mutations are serialized through its mutex,
// persist a snapshot exactly once after the mutation completes, and return
// the freshly derived view.
type Store struct {
	mu       sync.Mutex
	items    []LineItem
	currency currency.Code
	repo     SnapshotRepository
	log      zerolog.Logger
}

// NewStore creates an empty cart at the default currency (USD)
func NewStore(repo SnapshotRepository, log zerolog.Logger) *Store {
	return &Store{
		currency: currency.USD,
		repo:     repo,
		log:      log.With().Str("component", "cart").Logger(),
	}
}

// Restore loads the persisted snapshot, if any. An absent or malformed
// snapshot means "no prior cart": the store stays empty at USD. Display
// prices are always recomputed from the canonical price at the restored
// currency; lines with a non-positive quantity in tampered storage are
// dropped.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok, err := s.repo.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load cart snapshot, starting empty")
		return
	}
	if !ok {
		return
	}

	cur, err := currency.Parse(string(snap.Currency))
	if err != nil {
		s.log.Warn().Str("currency", string(snap.Currency)).Msg("Snapshot has unknown currency, starting empty")
		return
	}

	items := make([]LineItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		if item.Quantity < 1 {
			s.log.Warn().Str("item", item.Name).Int("quantity", item.Quantity).Msg("Dropping snapshot line with invalid quantity")
			continue
		}
		item.UnitPrice = pricing.Convert(item.BasePrice, cur)
		items = append(items, item)
	}

	s.items = items
	s.currency = cur
	s.log.Info().Int("items", len(items)).Str("currency", string(cur)).Msg("Cart restored from snapshot")
}

// AddItem adds one unit of the named item. If the item is already present
// its quantity is incremented; otherwise a new line is appended with
// quantity 1. basePrice is the canonical USD price.
func (s *Store) AddItem(name string, basePrice float64, category string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Name == name {
			s.items[i].Quantity++
			s.items[i].UnitPrice = pricing.Convert(s.items[i].BasePrice, s.currency)
			return s.commit()
		}
	}

	s.items = append(s.items, LineItem{
		Name:      name,
		UnitPrice: pricing.Convert(basePrice, s.currency),
		BasePrice: basePrice,
		Category:  category,
		Quantity:  1,
	})
	return s.commit()
}

// RemoveItem removes the line at the given position
func (s *Store) RemoveItem(index int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return View{}, ErrInvalidIndex
	}

	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.commit(), nil
}

// AdjustQuantity changes the quantity of the line at the given position by
// delta, which may be any integer. A resulting quantity of 0 or less removes
// the line entirely - quantities below 1 are never kept.
func (s *Store) AdjustQuantity(index, delta int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return View{}, ErrInvalidIndex
	}

	s.items[index].Quantity += delta
	if s.items[index].Quantity <= 0 {
		s.items = append(s.items[:index], s.items[index+1:]...)
	}
	return s.commit(), nil
}

// SetCurrency switches the active display currency and recomputes every
// display price from its canonical USD price. This is the only path by which
// a display price changes without an item or quantity change.
func (s *Store) SetCurrency(c currency.Code) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currency = c
	for i := range s.items {
		s.items[i].UnitPrice = pricing.Convert(s.items[i].BasePrice, c)
	}
	return s.commit()
}

// Clear empties the cart. The active currency is retained.
func (s *Store) Clear() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.commit()
}

// View derives the current renderable view without mutating or persisting
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Render(s.items, s.currency)
}

// Currency returns the active display currency
func (s *Store) Currency() currency.Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// Items returns a copy of the current line items
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// commit persists a snapshot of the mutated state and derives the new view.
// Called exactly once at the end of every successful mutation, with the lock
// held. A failed write is logged and swallowed: the cart keeps operating in
// memory.
func (s *Store) commit() View {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)

	if err := s.repo.Save(Snapshot{Items: items, Currency: s.currency}); err != nil {
		s.log.Warn().Err(err).Msg("Failed to persist cart snapshot")
	}

	return Render(s.items, s.currency)
}
