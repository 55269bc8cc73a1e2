package request

import "github.com/google/uuid"

type ChargePointsRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type AdjustPointsRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	// Delta may be negative; the ledger rejects adjustments that would
	// drive the balance below zero.
	Delta int64 `json:"delta" binding:"required"`
}
