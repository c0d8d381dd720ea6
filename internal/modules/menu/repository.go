package menu

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository handles menu catalog database operations.
// The catalog lives in store.db (menu_items table) and is seeded by the
// schema migration.
type Repository struct {
	db  *sql.DB // store.db - menu_items table
	log zerolog.Logger
}

// NewRepository creates a new menu repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "menu").Logger(),
	}
}

// All returns every dish, ordered by category then name
func (r *Repository) All() ([]Dish, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, price_usd, description
		FROM menu_items
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	return scanDishes(rows)
}

// ListByCategory returns the dishes in one category, ordered by name
func (r *Repository) ListByCategory(category string) ([]Dish, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, price_usd, description
		FROM menu_items
		WHERE category = ?
		ORDER BY name
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu category %s: %w", category, err)
	}
	defer rows.Close()

	return scanDishes(rows)
}

// GetByName returns a single dish by its unique name.
// Returns (nil, nil) when the dish doesn't exist.
func (r *Repository) GetByName(name string) (*Dish, error) {
	var d Dish
	err := r.db.QueryRow(`
		SELECT id, name, category, price_usd, description
		FROM menu_items
		WHERE name = ?
	`, name).Scan(&d.ID, &d.Name, &d.Category, &d.PriceUSD, &d.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item %s: %w", name, err)
	}
	return &d, nil
}

func scanDishes(rows *sql.Rows) ([]Dish, error) {
	var dishes []Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.PriceUSD, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}
	return dishes, nil
}
