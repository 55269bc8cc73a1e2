//go:build unit || e2e

package builder

import (
	"time"

	reqdto "futsal-reserve/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	GroundID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// NewReservationBuilder defaults to a one-hour slot tomorrow at 10:00.
func NewReservationBuilder(groundID uuid.UUID) *ReservationBuilder {
	start := time.Now().AddDate(0, 0, 1).Truncate(time.Hour)
	start = time.Date(start.Year(), start.Month(), start.Day(), 10, 0, 0, 0, start.Location())
	return &ReservationBuilder{
		GroundID:  groundID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

func (b *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithStartHour(hour int) *ReservationBuilder {
	day := time.Now().AddDate(0, 0, 1)
	b.StartTime = time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
	b.EndTime = b.StartTime.Add(time.Hour)
	return b
}

func (b *ReservationBuilder) BuildDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		GroundID:  b.GroundID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}
