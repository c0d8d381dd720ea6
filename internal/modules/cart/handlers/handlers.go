// Package handlers provides HTTP handlers for cart operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/modules/cart"
	"github.com/saveur/storefront/internal/modules/currency"
)

// Handler handles cart HTTP requests. Every mutating endpoint responds with
// the freshly derived cart view so the UI layer can repaint immediately.
type Handler struct {
	store *cart.Store
	log   zerolog.Logger
}

// NewHandler creates a new cart handler
func NewHandler(store *cart.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log.With().Str("handler", "cart").Logger(),
	}
}

// AddItemRequest represents a request to add an item to the cart
type AddItemRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"` // canonical USD price
	Category string  `json:"category"`
}

// AdjustQuantityRequest represents a request to change a line's quantity
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

// SetCurrencyRequest represents a request to switch the display currency
type SetCurrencyRequest struct {
	Currency string `json:"currency"`
}

// HandleGetCart handles GET /api/cart
func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, h.store.View())
}

// HandleAddItem handles POST /api/cart/items
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Price <= 0 {
		http.Error(w, "price must be positive", http.StatusBadRequest)
		return
	}

	view := h.store.AddItem(req.Name, req.Price, req.Category)
	h.writeView(w, view)
}

// HandleRemoveItem handles DELETE /api/cart/items/{index}
func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	view, err := h.store.RemoveItem(index)
	if err != nil {
		h.respondIndexError(w, err, index)
		return
	}
	h.writeView(w, view)
}

// HandleAdjustQuantity handles PATCH /api/cart/items/{index}
func (h *Handler) HandleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	var req AdjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Delta == 0 {
		http.Error(w, "delta must be non-zero", http.StatusBadRequest)
		return
	}

	view, err := h.store.AdjustQuantity(index, req.Delta)
	if err != nil {
		h.respondIndexError(w, err, index)
		return
	}
	h.writeView(w, view)
}

// HandleSetCurrency handles PUT /api/cart/currency
func (h *Handler) HandleSetCurrency(w http.ResponseWriter, r *http.Request) {
	var req SetCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	code, err := currency.Parse(req.Currency)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := h.store.SetCurrency(code)
	h.writeView(w, view)
}

// HandleClearCart handles DELETE /api/cart
func (h *Handler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, h.store.Clear())
}

// parseIndex extracts and validates the {index} URL parameter
func (h *Handler) parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func (h *Handler) respondIndexError(w http.ResponseWriter, err error, index int) {
	if errors.Is(err, cart.ErrInvalidIndex) {
		h.log.Warn().Int("index", index).Msg("Cart operation on invalid index")
		http.Error(w, "no cart item at that position", http.StatusBadRequest)
		return
	}
	http.Error(w, "cart operation failed", http.StatusInternalServerError)
}

func (h *Handler) writeView(w http.ResponseWriter, view cart.View) {
	response := map[string]interface{}{
		"data": view,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
