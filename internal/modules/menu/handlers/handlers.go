// Package handlers provides HTTP handlers for menu browsing.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/modules/currency"
	"github.com/saveur/storefront/internal/modules/menu"
)

// Handler handles menu HTTP requests
type Handler struct {
	service *menu.Service
	log     zerolog.Logger
}

// NewHandler creates a new menu handler
func NewHandler(service *menu.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "menu").Logger(),
	}
}

// RegisterRoutes registers all menu routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.HandleGetMenu)
		r.Get("/{category}", h.HandleGetCategory)
	})
}

// HandleGetMenu handles GET /api/menu?currency=EUR
func (h *Handler) HandleGetMenu(w http.ResponseWriter, r *http.Request) {
	code, ok := h.parseCurrency(w, r)
	if !ok {
		return
	}

	view, err := h.service.Menu(code)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load menu")
		http.Error(w, "Failed to load menu", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": view,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetCategory handles GET /api/menu/{category}?currency=EUR
func (h *Handler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	code, ok := h.parseCurrency(w, r)
	if !ok {
		return
	}

	category := chi.URLParam(r, "category")
	dishes, err := h.service.Category(category, code)
	if err != nil {
		h.log.Error().Err(err).Str("category", category).Msg("Failed to load menu category")
		http.Error(w, "Failed to load menu category", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"category": category,
			"currency": code,
			"dishes":   dishes,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// parseCurrency reads the optional ?currency= parameter, defaulting to USD
func (h *Handler) parseCurrency(w http.ResponseWriter, r *http.Request) (currency.Code, bool) {
	raw := r.URL.Query().Get("currency")
	if raw == "" {
		return currency.USD, true
	}

	code, err := currency.Parse(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return code, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
