package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotInPast             = errors.New("slot must start in the future")
	ErrOutsideOperatingHours  = errors.New("slot is outside the ground's operating hours")
	ErrNegativePrice          = errors.New("price cannot be negative")
	ErrNotConfirmed           = errors.New("reservation is not confirmed")
	ErrAlreadyCancelled       = errors.New("reservation is already cancelled")
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
)

// Reservation ties a user to a ground time slot. PriceAtBooking is the point
// amount snapshotted from the ground when the booking was made; the refund on
// cancellation always uses this value, never the ground's current price.
type Reservation struct {
	id             uuid.UUID
	groundID       uuid.UUID
	userID         uuid.UUID
	timeSlot       TimeSlot
	status         Status
	priceAtBooking Money
	createdAt      time.Time
	updatedAt      time.Time
	cancelledAt    *time.Time
}

func ReconstructReservation(
	id, groundID, userID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	priceAtBooking Money,
	createdAt, updatedAt time.Time,
	cancelledAt *time.Time,
) *Reservation {
	return &Reservation{
		id:             id,
		groundID:       groundID,
		userID:         userID,
		timeSlot:       timeSlot,
		status:         status,
		priceAtBooking: priceAtBooking,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		cancelledAt:    cancelledAt,
	}
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) GroundID() uuid.UUID    { return r.groundID }
func (r *Reservation) UserID() uuid.UUID      { return r.userID }
func (r *Reservation) TimeSlot() TimeSlot     { return r.timeSlot }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) PriceAtBooking() Money  { return r.priceAtBooking }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }

func (r *Reservation) IsConfirmed() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

// Confirm moves a held slot to confirmed. Only the booking transaction
// performs this transition.
func (r *Reservation) Confirm() error {
	if r.status != StatusPending {
		return ErrInvalidStatusTransition
	}
	r.status = StatusConfirmed
	return nil
}

// Cancel releases a confirmed slot. Cancelling an already-cancelled
// reservation reports ErrAlreadyCancelled so callers can treat it as an
// idempotent no-op rather than a failure.
func (r *Reservation) Cancel(now time.Time) error {
	switch r.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusConfirmed:
		r.status = StatusCancelled
		r.cancelledAt = &now
		return nil
	default:
		return ErrNotConfirmed
	}
}

// RefundAmount is the point delta owed back when a confirmed booking is
// cancelled.
func (r *Reservation) RefundAmount() int64 {
	return r.priceAtBooking.Points()
}
