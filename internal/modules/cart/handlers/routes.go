package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all cart routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.HandleGetCart)
		r.Delete("/", h.HandleClearCart)
		r.Post("/items", h.HandleAddItem)
		r.Delete("/items/{index}", h.HandleRemoveItem)
		r.Patch("/items/{index}", h.HandleAdjustQuantity)
		r.Put("/currency", h.HandleSetCurrency)
	})
}
