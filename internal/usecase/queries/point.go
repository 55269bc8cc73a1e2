package queries

import (
	"context"

	"futsal-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type LedgerReadStore interface {
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*LedgerEntryView, error)
}

type PointQueries interface {
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*LedgerEntryView, error)
}

type pointQueriesImpl struct {
	store LedgerReadStore
}

func NewPointQueries(store LedgerReadStore) PointQueries {
	return &pointQueriesImpl{store: store}
}

func (q *pointQueriesImpl) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	balance, err := q.store.Balance(ctx, userID)
	if err != nil {
		return 0, errs.Wrap(err, "failed to read balance")
	}
	return balance, nil
}

func (q *pointQueriesImpl) History(ctx context.Context, userID uuid.UUID, limit int) ([]*LedgerEntryView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries, err := q.store.FindByUserID(ctx, userID, int32(limit))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read ledger history")
	}
	return entries, nil
}
