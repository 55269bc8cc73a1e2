package shared

import (
	"time"

	"github.com/google/uuid"
)

type GroundSnapshot struct {
	ID           uuid.UUID
	Name         string
	Address      string
	PaymentPoint int64
	OpenHour     int
	CloseHour    int
}

// Minimal snapshot for command-side reads
type ReservationSnapshot struct {
	ID             uuid.UUID
	GroundID       uuid.UUID
	UserID         uuid.UUID
	Status         string
	PriceAtBooking int64
	StartTime      time.Time
	EndTime        time.Time
}
