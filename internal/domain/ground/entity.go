package ground

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName            = errors.New("ground name cannot be empty")
	ErrNegativePaymentPoint = errors.New("payment point cannot be negative")
	ErrInvalidOperatingHour = errors.New("operating hours must satisfy 0 <= open < close <= 24")
)

// Ground is a bookable futsal ground. It is immutable from the reservation
// engine's point of view: a booking snapshots PaymentPoint into the
// reservation, so later price edits never affect existing bookings.
type Ground struct {
	id           uuid.UUID
	name         string
	address      string
	paymentPoint int64
	openHour     int
	closeHour    int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewGround(id uuid.UUID, name, address string, paymentPoint int64, openHour, closeHour int) (*Ground, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if paymentPoint < 0 {
		return nil, ErrNegativePaymentPoint
	}
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return nil, ErrInvalidOperatingHour
	}
	return &Ground{
		id:           id,
		name:         name,
		address:      address,
		paymentPoint: paymentPoint,
		openHour:     openHour,
		closeHour:    closeHour,
	}, nil
}

func (g *Ground) ID() uuid.UUID       { return g.id }
func (g *Ground) Name() string        { return g.name }
func (g *Ground) Address() string     { return g.address }
func (g *Ground) PaymentPoint() int64 { return g.paymentPoint }
func (g *Ground) OpenHour() int       { return g.openHour }
func (g *Ground) CloseHour() int      { return g.closeHour }

// IsWithinOperatingHours reports whether the slot falls inside the ground's
// daily operating window. A closeHour of 24 normalizes to the following
// midnight, so the 23:00 slot of a midnight-close ground is inside the window.
func (g *Ground) IsWithinOperatingHours(start, end time.Time) bool {
	open := time.Date(start.Year(), start.Month(), start.Day(), g.openHour, 0, 0, 0, start.Location())
	close := time.Date(start.Year(), start.Month(), start.Day(), g.closeHour, 0, 0, 0, start.Location())
	return !start.Before(open) && !end.After(close)
}
