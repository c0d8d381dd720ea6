package support

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/utils"
)

// ErrInvalid wraps refund request validation failures
var ErrInvalid = errors.New("invalid refund request")

// RefundRequest is a submitted refund request. Requests are recorded for the
// support team; nothing in this system moves money.
type RefundRequest struct {
	ID             int64  `json:"id"`
	Reference      string `json:"reference"`
	OrderReference string `json:"order_reference"`
	Reason         string `json:"reason"`
	Details        string `json:"details"`
	Status         string `json:"status"`
	CreatedAt      int64  `json:"created_at"`
}

// RefundService validates and stores refund requests
type RefundService struct {
	db  *sql.DB // store.db - refund_requests table
	now func() time.Time
	log zerolog.Logger
}

// NewRefundService creates a new refund service
func NewRefundService(db *sql.DB, log zerolog.Logger) *RefundService {
	return &RefundService{
		db:  db,
		now: time.Now,
		log: log.With().Str("service", "refunds").Logger(),
	}
}

// Request records a refund request and returns it with its REF reference
func (s *RefundService) Request(orderReference, reason, details string) (*RefundRequest, error) {
	if orderReference == "" {
		return nil, fmt.Errorf("%w: order reference is required", ErrInvalid)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalid)
	}

	req := &RefundRequest{
		Reference:      utils.NewReference("REF"),
		OrderReference: orderReference,
		Reason:         reason,
		Details:        details,
		Status:         "pending",
		CreatedAt:      s.now().Unix(),
	}

	result, err := s.db.Exec(`
		INSERT INTO refund_requests (reference, order_reference, reason, details, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, req.Reference, req.OrderReference, req.Reason, req.Details, req.Status, req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store refund request: %w", err)
	}
	req.ID, _ = result.LastInsertId()

	s.log.Info().
		Str("reference", req.Reference).
		Str("order", req.OrderReference).
		Str("reason", req.Reason).
		Msg("Refund request submitted")

	return req, nil
}
