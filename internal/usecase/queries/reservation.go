package queries

import (
	"context"
	"time"

	"futsal-reserve/internal/domain/user"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByGroundID(ctx context.Context, groundID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindOccupiedSlots(ctx context.Context, groundID uuid.UUID, from, to time.Time) ([]*OccupiedSlot, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem bypasses the ownership check for internal read-after-write
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*ReservationListItem, error)
	// ListByGround is the admin view of a ground's booking history
	ListByGround(ctx context.Context, groundID uuid.UUID, limit int) ([]*ReservationView, error)
	OccupiedSlots(ctx context.Context, groundID uuid.UUID, from, to time.Time) ([]*OccupiedSlot, error)
}

const defaultListLimit = 50

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && actorRole != user.RoleAdmin {
		return nil, errs.ErrNotOwner
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*ReservationListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	items, err := q.store.FindByUserID(ctx, userID, int32(limit))
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations")
	}
	return items, nil
}

func (q *reservationQueriesImpl) ListByGround(ctx context.Context, groundID uuid.UUID, limit int) ([]*ReservationView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	views, err := q.store.FindByGroundID(ctx, groundID, int32(limit))
	if err != nil {
		return nil, errs.Wrap(err, "failed to list ground reservations")
	}
	return views, nil
}

func (q *reservationQueriesImpl) OccupiedSlots(ctx context.Context, groundID uuid.UUID, from, to time.Time) ([]*OccupiedSlot, error) {
	slots, err := q.store.FindOccupiedSlots(ctx, groundID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list occupied slots")
	}
	return slots, nil
}
