// Package reservations handles table reservation requests.
package reservations

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/utils"
)

// ErrInvalid wraps all validation failures. The message after the sentinel
// is safe to show to the customer.
var ErrInvalid = errors.New("invalid reservation")

// Reservation is a confirmed table reservation
type Reservation struct {
	ID           int64  `json:"id"`
	Confirmation string `json:"confirmation"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Guests       int    `json:"guests"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // HH:MM
	Special      string `json:"special"`
	CreatedAt    int64  `json:"created_at"`
}

// Request is an incoming reservation submission
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Guests  int    `json:"guests"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Special string `json:"special"`
}

// Service validates and stores reservations
type Service struct {
	db  *sql.DB // store.db - reservations table
	now func() time.Time
	log zerolog.Logger
}

// NewService creates a new reservations service
func NewService(db *sql.DB, log zerolog.Logger) *Service {
	return &Service{
		db:  db,
		now: time.Now,
		log: log.With().Str("service", "reservations").Logger(),
	}
}

// Create validates a reservation request and stores it, returning the
// confirmed reservation with its RES reference. Reservations must be for
// tomorrow or later.
func (s *Service) Create(req Request) (*Reservation, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: name, email and phone are required", ErrInvalid)
	}
	if req.Guests < 1 || req.Guests > 12 {
		return nil, fmt.Errorf("%w: guests must be between 1 and 12", ErrInvalid)
	}
	if req.Time == "" {
		return nil, fmt.Errorf("%w: time is required", ErrInvalid)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognized date %q", ErrInvalid, req.Date)
	}

	tomorrow := s.now().AddDate(0, 0, 1)
	startOfTomorrow := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.Local)
	if date.Before(startOfTomorrow) {
		return nil, fmt.Errorf("%w: date must be tomorrow or later", ErrInvalid)
	}

	res := &Reservation{
		Confirmation: utils.NewReference("RES"),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Guests:       req.Guests,
		Date:         req.Date,
		Time:         req.Time,
		Special:      req.Special,
		CreatedAt:    s.now().Unix(),
	}

	result, err := s.db.Exec(`
		INSERT INTO reservations (confirmation, name, email, phone, guests, date, time, special, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, res.Confirmation, res.Name, res.Email, res.Phone, res.Guests, res.Date, res.Time, res.Special, res.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store reservation: %w", err)
	}
	res.ID, _ = result.LastInsertId()

	s.log.Info().
		Str("confirmation", res.Confirmation).
		Str("date", res.Date).
		Str("time", res.Time).
		Int("guests", res.Guests).
		Msg("Reservation confirmed")

	return res, nil
}
