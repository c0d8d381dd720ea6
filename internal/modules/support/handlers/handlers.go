// Package handlers provides the support HTTP surface: refund requests and
// the scripted chat websocket.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/saveur/storefront/internal/modules/support"
)

// Handler handles support HTTP requests
type Handler struct {
	refunds    *support.RefundService
	replyDelay time.Duration // scripted "typing" delay before the bot answers
	log        zerolog.Logger
}

// NewHandler creates a new support handler
func NewHandler(refunds *support.RefundService, log zerolog.Logger) *Handler {
	return &Handler{
		refunds:    refunds,
		replyDelay: time.Second,
		log:        log.With().Str("handler", "support").Logger(),
	}
}

// RegisterRoutes registers support routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/support", func(r chi.Router) {
		r.Post("/refunds", h.HandleRefundRequest)
		r.Get("/chat", h.HandleChat)
	})
}

// RefundRequestBody represents a refund submission
type RefundRequestBody struct {
	OrderReference string `json:"order_reference"`
	Reason         string `json:"reason"`
	Details        string `json:"details"`
}

// HandleRefundRequest handles POST /api/support/refunds
func (h *Handler) HandleRefundRequest(w http.ResponseWriter, r *http.Request) {
	var req RefundRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	refund, err := h.refunds.Request(req.OrderReference, req.Reason, req.Details)
	if err != nil {
		if errors.Is(err, support.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Failed to store refund request")
		http.Error(w, "Failed to submit refund request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": refund,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// ChatMessage is a frame on the chat websocket. Inbound frames carry either
// free text (type "message") or a canned topic (type "quick"). Outbound
// frames carry the sender and text to paint.
type ChatMessage struct {
	Type   string `json:"type,omitempty"`
	Topic  string `json:"topic,omitempty"`
	Sender string `json:"sender,omitempty"`
	Text   string `json:"text"`
}

// HandleChat handles GET /api/support/chat, upgrading to a websocket.
// Each customer message gets a scripted reply after a short delay, the same
// canned-typing pause the storefront chat has always had.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Same-device UI; the HTTP layer already allows all origins
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "chat ended unexpectedly")

	ctx := r.Context()
	h.log.Debug().Msg("Chat session opened")

	for {
		var msg ChatMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			// Client went away or closed the chat
			h.log.Debug().Err(err).Msg("Chat session closed")
			return
		}

		text := msg.Text
		if msg.Type == "quick" {
			canned, ok := support.QuickQuery(msg.Topic)
			if !ok {
				continue
			}
			text = canned
			// Echo the resolved canned message so the UI can paint it as
			// the customer's own bubble
			if err := wsjson.Write(ctx, conn, ChatMessage{Sender: "user", Text: text}); err != nil {
				return
			}
		}

		if text == "" {
			continue
		}

		select {
		case <-time.After(h.replyDelay):
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		reply := ChatMessage{Sender: "bot", Text: support.Respond(text)}
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			h.log.Debug().Err(err).Msg("Failed to write chat reply")
			return
		}
	}
}
