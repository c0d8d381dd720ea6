package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/modules/cart"
	"github.com/saveur/storefront/internal/modules/pricing"
	"github.com/saveur/storefront/internal/utils"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the
// cart. Surfaced to the customer as a message, never a crash.
var ErrEmptyCart = errors.New("orders: cart is empty")

// ErrNotFound is returned when a tracking reference matches no order
var ErrNotFound = errors.New("orders: order not found")

// ErrInvalid wraps checkout validation failures; the message is safe to show
// to the customer
var ErrInvalid = errors.New("invalid checkout request")

// trackingStages is the delivery timeline: stage name and minutes after
// placement at which the stage is reached
var trackingStages = []struct {
	status string
	offset time.Duration
}{
	{"Order Received", 0},
	{"Preparing", 10 * time.Minute},
	{"Ready for Pickup", 35 * time.Minute},
	{"Out for Delivery", 55 * time.Minute},
	{"Delivered", 90 * time.Minute},
}

// paymentMethods are the accepted checkout payment methods. Payment is
// recorded, not processed.
var paymentMethods = map[string]bool{
	"cash": true,
	"card": true,
}

// Service implements checkout and tracking on top of the cart store
type Service struct {
	store *cart.Store
	repo  *Repository
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a new orders service
func NewService(store *cart.Store, repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		repo:  repo,
		now:   time.Now,
		log:   log.With().Str("service", "orders").Logger(),
	}
}

// PlaceOrder freezes the current cart into an order record, writes it to the
// ledger, and clears the cart. An empty cart is rejected before anything is
// written.
func (s *Service) PlaceOrder(customer Customer, paymentMethod string) (*Confirmation, error) {
	if customer.Name == "" || customer.Email == "" || customer.Phone == "" {
		return nil, fmt.Errorf("%w: customer name, email and phone are required", ErrInvalid)
	}
	if !paymentMethods[paymentMethod] {
		return nil, fmt.Errorf("%w: unsupported payment method %q", ErrInvalid, paymentMethod)
	}

	items := s.store.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	cur := s.store.Currency()

	order := Order{
		ID:            uuid.NewString(),
		Reference:     utils.NewReference("ORD"),
		Customer:      customer,
		PaymentMethod: paymentMethod,
		Currency:      cur,
		PlacedAt:      s.now(),
	}

	for _, line := range items {
		lineTotal := line.UnitPrice * float64(line.Quantity)
		order.Total += lineTotal
		order.Items = append(order.Items, Item{
			Name:      line.Name,
			Category:  line.Category,
			UnitPrice: line.UnitPrice,
			BasePrice: line.BasePrice,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
	}

	if err := s.repo.Insert(order); err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	// Order is safely on disk; empty the cart for the next visit
	s.store.Clear()

	s.log.Info().
		Str("reference", order.Reference).
		Str("currency", string(cur)).
		Float64("total", order.Total).
		Int("lines", len(order.Items)).
		Msg("Order placed")

	return &Confirmation{
		Reference:         order.Reference,
		CustomerName:      customer.Name,
		TotalFormatted:    pricing.Format(order.Total, cur),
		EstimatedDelivery: "30-45 minutes",
	}, nil
}

// Track returns the delivery timeline for an order. Stages are derived from
// the time elapsed since placement; the final stage carries an estimate
// until it is reached.
func (s *Service) Track(reference string) (*Tracking, error) {
	order, err := s.repo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	elapsed := s.now().Sub(order.PlacedAt)
	tracking := &Tracking{Reference: order.Reference}

	for _, stage := range trackingStages {
		completed := elapsed >= stage.offset
		at := order.PlacedAt.Add(stage.offset)

		label := at.Format("3:04 PM")
		if !completed {
			label = "Estimated: " + label
		}

		tracking.Stages = append(tracking.Stages, TrackingStage{
			Status:    stage.status,
			Time:      label,
			Completed: completed,
		})
	}

	tracking.Delivered = tracking.Stages[len(tracking.Stages)-1].Completed
	return tracking, nil
}
