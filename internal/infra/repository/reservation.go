package repository

import (
	"context"
	"errors"

	"futsal-reserve/internal/domain/reservation"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateHold inserts the reservation in pending state. The reservations
// exclusion constraint is the slot-availability check: a concurrent active
// reservation on an overlapping slot makes the insert fail with KindConflict.
func (r *ReservationRepository) CreateHold(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (id, user_id, ground_id, slot, status, price_at_booking)
		VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6, $7)`,
		res.ID(),
		res.UserID(),
		res.GroundID(),
		res.TimeSlot().Start(),
		res.TimeSlot().End(),
		res.Status().String(),
		res.PriceAtBooking().Points(),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return infra.WrapRepoErr("slot is already reserved", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create reservation hold", err)
	}
	return nil
}

// Confirm transitions a held reservation to confirmed. The status guard in
// the WHERE clause replaces explicit locking: only the transaction that
// created the hold can observe it in pending state.
func (r *ReservationRepository) Confirm(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = 'confirmed', updated_at = now()
		WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to confirm reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation hold not found", nil, infra.KindNotFound)
	}
	return nil
}

// ReleaseHold removes a pending hold, compensating a booking that failed
// after the slot was taken.
func (r *ReservationRepository) ReleaseHold(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM reservations
		WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release reservation hold", err)
	}
	return nil
}

// Cancel transitions confirmed -> cancelled. It reports false when no row
// transitioned, which callers resolve by re-reading the status: the
// reservation either never was confirmed or lost a cancellation race.
func (r *ReservationRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status = 'cancelled', cancelled_at = now(), updated_at = now()
		WHERE id = $1 AND status = 'confirmed'`,
		id,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to cancel reservation", err)
	}
	return tag.RowsAffected() == 1, nil
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeUniqueViolation, pgErrCodeExclusionViolation:
		return true
	default:
		return false
	}
}
