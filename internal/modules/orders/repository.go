package orders

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/database"
	"github.com/saveur/storefront/internal/modules/currency"
)

// Repository handles order database operations against orders.db
type Repository struct {
	db  *sql.DB // orders.db - orders + order_items tables
	log zerolog.Logger
}

// NewRepository creates a new orders repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "orders").Logger(),
	}
}

// Insert writes an order and its lines in a single transaction
func (r *Repository) Insert(order Order) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO orders (id, reference, customer_name, customer_email,
				customer_phone, customer_address, payment_method, currency,
				total, placed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, order.ID, order.Reference, order.Customer.Name, order.Customer.Email,
			order.Customer.Phone, order.Customer.Address, order.PaymentMethod,
			string(order.Currency), order.Total, order.PlacedAt.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", order.Reference, err)
		}

		for _, item := range order.Items {
			_, err := tx.Exec(`
				INSERT INTO order_items (order_id, name, category, unit_price,
					base_price, quantity, line_total)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, order.ID, item.Name, item.Category, item.UnitPrice,
				item.BasePrice, item.Quantity, item.LineTotal)
			if err != nil {
				return fmt.Errorf("failed to insert order item %s: %w", item.Name, err)
			}
		}
		return nil
	})
}

// GetByReference loads an order and its lines by the human-facing reference.
// Returns (nil, nil) when no such order exists.
func (r *Repository) GetByReference(reference string) (*Order, error) {
	var order Order
	var cur string
	var placedAt int64
	err := r.db.QueryRow(`
		SELECT id, reference, customer_name, customer_email, customer_phone,
			customer_address, payment_method, currency, total, placed_at
		FROM orders
		WHERE reference = ?
	`, reference).Scan(&order.ID, &order.Reference, &order.Customer.Name,
		&order.Customer.Email, &order.Customer.Phone, &order.Customer.Address,
		&order.PaymentMethod, &cur, &order.Total, &placedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", reference, err)
	}

	order.Currency = currency.Code(cur)
	order.PlacedAt = time.Unix(placedAt, 0)

	rows, err := r.db.Query(`
		SELECT name, category, unit_price, base_price, quantity, line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for %s: %w", reference, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.Name, &item.Category, &item.UnitPrice,
			&item.BasePrice, &item.Quantity, &item.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return &order, nil
}

// Count returns the number of placed orders
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}
