// Package handlers provides HTTP handlers for reservations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/modules/reservations"
)

// Handler handles reservation HTTP requests
type Handler struct {
	service *reservations.Service
	log     zerolog.Logger
}

// NewHandler creates a new reservations handler
func NewHandler(service *reservations.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "reservations").Logger(),
	}
}

// RegisterRoutes registers reservation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reservations", h.HandleCreate)
}

// HandleCreate handles POST /api/reservations
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req reservations.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.Create(req)
	if err != nil {
		// Validation failures carry a customer-readable message
		if errors.Is(err, reservations.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Failed to create reservation")
		http.Error(w, "Failed to create reservation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": res,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
