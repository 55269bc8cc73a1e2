package readstore

import (
	"context"
	"errors"

	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"
	"futsal-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves the minimal snapshots the write side needs. Built over
// DBTX so the same queries run against the pool or inside a transaction.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(db db.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

func (s *CommandReads) GroundByID(ctx context.Context, id uuid.UUID) (*shared.GroundSnapshot, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, address, payment_point, open_hour, close_hour
		FROM grounds
		WHERE id = $1`,
		id,
	)

	var g shared.GroundSnapshot
	err := row.Scan(&g.ID, &g.Name, &g.Address, &g.PaymentPoint, &g.OpenHour, &g.CloseHour)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("ground not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find ground", err)
	}
	return &g, nil
}

func (s *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, ground_id, user_id, status, price_at_booking, lower(slot), upper(slot)
		FROM reservations
		WHERE id = $1`,
		id,
	)

	var r shared.ReservationSnapshot
	err := row.Scan(&r.ID, &r.GroundID, &r.UserID, &r.Status, &r.PriceAtBooking, &r.StartTime, &r.EndTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return &r, nil
}
