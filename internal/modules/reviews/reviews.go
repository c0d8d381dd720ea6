// Package reviews stores and lists customer reviews.
package reviews

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalid wraps review validation failures
var ErrInvalid = errors.New("invalid review")

// Review is a submitted customer review
type Review struct {
	ID        int64  `json:"id"`
	Reviewer  string `json:"reviewer"`
	Rating    int    `json:"rating"` // 1..5
	Stars     string `json:"stars"`  // e.g. "★★★★☆"
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

// Service validates, stores and lists reviews
type Service struct {
	db  *sql.DB // store.db - reviews table
	now func() time.Time
	log zerolog.Logger
}

// NewService creates a new reviews service
func NewService(db *sql.DB, log zerolog.Logger) *Service {
	return &Service{
		db:  db,
		now: time.Now,
		log: log.With().Str("service", "reviews").Logger(),
	}
}

// Add stores a new review
func (s *Service) Add(reviewer string, rating int, text string) (*Review, error) {
	if reviewer == "" {
		return nil, fmt.Errorf("%w: reviewer name is required", ErrInvalid)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: review text is required", ErrInvalid)
	}

	review := &Review{
		Reviewer:  reviewer,
		Rating:    rating,
		Stars:     starString(rating),
		Text:      text,
		CreatedAt: s.now().Unix(),
	}

	result, err := s.db.Exec(`
		INSERT INTO reviews (reviewer, rating, text, created_at)
		VALUES (?, ?, ?, ?)
	`, review.Reviewer, review.Rating, review.Text, review.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}
	review.ID, _ = result.LastInsertId()

	s.log.Info().Str("reviewer", reviewer).Int("rating", rating).Msg("Review added")
	return review, nil
}

// List returns reviews newest-first
func (s *Service) List() ([]Review, error) {
	rows, err := s.db.Query(`
		SELECT id, reviewer, rating, text, created_at
		FROM reviews
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Reviewer, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		r.Stars = starString(r.Rating)
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, nil
}

// starString renders a rating as filled and hollow stars
func starString(rating int) string {
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
