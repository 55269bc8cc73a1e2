package response

import "futsal-reserve/internal/usecase/queries"

type ReservationListResponse struct {
	Reservations []*queries.ReservationListItem `json:"reservations"`
}

type OccupiedSlotsResponse struct {
	GroundID string                  `json:"ground_id"`
	Slots    []*queries.OccupiedSlot `json:"slots"`
}
