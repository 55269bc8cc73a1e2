package request

import (
	"time"

	"futsal-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	GroundID  uuid.UUID `json:"ground_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (r CreateReservationRequest) ToParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		GroundID:  r.GroundID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
