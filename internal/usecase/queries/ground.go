package queries

import (
	"context"

	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type GroundReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GroundView, error)
	List(ctx context.Context) ([]*GroundView, error)
}

type GroundQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*GroundView, error)
	List(ctx context.Context) ([]*GroundView, error)
}

type groundQueriesImpl struct {
	store GroundReadStore
}

func NewGroundQueries(store GroundReadStore) GroundQueries {
	return &groundQueriesImpl{store: store}
}

func (q *groundQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*GroundView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrGroundNotFound
		}
		return nil, errs.Wrap(err, "failed to find ground")
	}
	return view, nil
}

func (q *groundQueriesImpl) List(ctx context.Context) ([]*GroundView, error) {
	grounds, err := q.store.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list grounds")
	}
	return grounds, nil
}
