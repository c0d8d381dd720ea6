// Package handlers provides HTTP handlers for checkout and order tracking.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/modules/orders"
)

// Handler handles checkout and tracking HTTP requests
type Handler struct {
	service *orders.Service
	log     zerolog.Logger
}

// NewHandler creates a new orders handler
func NewHandler(service *orders.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "orders").Logger(),
	}
}

// RegisterRoutes registers checkout and tracking routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.HandleCheckout)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/{reference}/tracking", h.HandleTracking)
	})
}

// CheckoutRequest represents a checkout submission
type CheckoutRequest struct {
	Customer      orders.Customer `json:"customer"`
	PaymentMethod string          `json:"payment_method"`
}

// HandleCheckout handles POST /api/checkout
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	confirmation, err := h.service.PlaceOrder(req.Customer, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, orders.ErrEmptyCart) {
			http.Error(w, "Your cart is empty!", http.StatusConflict)
			return
		}
		if errors.Is(err, orders.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Checkout failed")
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": confirmation,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleTracking handles GET /api/orders/{reference}/tracking
func (h *Handler) HandleTracking(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	tracking, err := h.service.Track(reference)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			http.Error(w, "no order with that reference", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("reference", reference).Msg("Failed to load tracking")
		http.Error(w, "Failed to load tracking", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": tracking,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
