package reservation

import (
	"futsal-reserve/internal/domain/ground"
	"futsal-reserve/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateReservation builds a new slot hold for the given ground and user.
// The result carries StatusPending: the hold only becomes visible as a
// booking once the transaction confirms it.
func (f *Factory) CreateReservation(
	groundEntity *ground.Ground,
	userID uuid.UUID,
	slot TimeSlot,
) (*Reservation, error) {
	if !slot.IsInFutureAt(f.Clock.Now()) {
		return nil, ErrSlotInPast
	}
	if !groundEntity.IsWithinOperatingHours(slot.Start(), slot.End()) {
		return nil, ErrOutsideOperatingHours
	}

	price, err := NewMoney(groundEntity.PaymentPoint())
	if err != nil {
		return nil, err
	}

	return &Reservation{
		id:             uuid.New(),
		groundID:       groundEntity.ID(),
		userID:         userID,
		timeSlot:       slot,
		status:         StatusPending,
		priceAtBooking: price,
	}, nil
}
