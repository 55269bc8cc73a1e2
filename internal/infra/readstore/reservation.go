package readstore

import (
	"context"
	"errors"
	"time"

	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"
	"futsal-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT r.id, r.ground_id, g.name, r.user_id, u.email,
		       lower(r.slot), upper(r.slot), r.status, r.price_at_booking,
		       r.created_at, r.updated_at, r.cancelled_at
		FROM reservations r
		JOIN grounds g ON g.id = r.ground_id
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`,
		id,
	)

	var v queries.ReservationView
	err := row.Scan(
		&v.ID, &v.GroundID, &v.GroundName, &v.UserID, &v.UserEmail,
		&v.StartTime, &v.EndTime, &v.Status, &v.PriceAtBooking,
		&v.CreatedAt, &v.UpdatedAt, &v.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return &v, nil
}

func (s *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.ground_id, g.name,
		       lower(r.slot), upper(r.slot), r.status, r.price_at_booking, r.created_at
		FROM reservations r
		JOIN grounds g ON g.id = r.ground_id
		WHERE r.user_id = $1 AND r.status <> 'pending'
		ORDER BY r.created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(
			&item.ID, &item.GroundID, &item.GroundName,
			&item.StartTime, &item.EndTime, &item.Status, &item.PriceAtBooking, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return items, nil
}

func (s *ReservationReadStore) FindByGroundID(ctx context.Context, groundID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.ground_id, g.name, r.user_id, u.email,
		       lower(r.slot), upper(r.slot), r.status, r.price_at_booking,
		       r.created_at, r.updated_at, r.cancelled_at
		FROM reservations r
		JOIN grounds g ON g.id = r.ground_id
		JOIN users u ON u.id = r.user_id
		WHERE r.ground_id = $1 AND r.status <> 'pending'
		ORDER BY lower(r.slot) DESC
		LIMIT $2`,
		groundID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ground reservations", err)
	}
	defer rows.Close()

	views := make([]*queries.ReservationView, 0)
	for rows.Next() {
		var v queries.ReservationView
		if err := rows.Scan(
			&v.ID, &v.GroundID, &v.GroundName, &v.UserID, &v.UserEmail,
			&v.StartTime, &v.EndTime, &v.Status, &v.PriceAtBooking,
			&v.CreatedAt, &v.UpdatedAt, &v.CancelledAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return views, nil
}

// FindOccupiedSlots lists confirmed slots overlapping [from, to). Pending
// holds are invisible outside the transaction that created them.
func (s *ReservationReadStore) FindOccupiedSlots(ctx context.Context, groundID uuid.UUID, from, to time.Time) ([]*queries.OccupiedSlot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ground_id, lower(slot), upper(slot)
		FROM reservations
		WHERE ground_id = $1
		  AND status = 'confirmed'
		  AND slot && tstzrange($2, $3, '[)')
		ORDER BY lower(slot)`,
		groundID, from, to,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupied slots", err)
	}
	defer rows.Close()

	slots := make([]*queries.OccupiedSlot, 0)
	for rows.Next() {
		var slot queries.OccupiedSlot
		if err := rows.Scan(&slot.GroundID, &slot.StartTime, &slot.EndTime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		slots = append(slots, &slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slot rows", err)
	}
	return slots, nil
}
