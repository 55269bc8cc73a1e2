package readstore

import (
	"context"
	"errors"

	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"
	"futsal-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type GroundReadStore struct {
	db db.DBTX
}

func NewGroundReadStore(db db.DBTX) *GroundReadStore {
	return &GroundReadStore{db: db}
}

func (s *GroundReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GroundView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, address, payment_point, open_hour, close_hour, created_at, updated_at
		FROM grounds
		WHERE id = $1`,
		id,
	)

	var v queries.GroundView
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.PaymentPoint, &v.OpenHour, &v.CloseHour, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("ground not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find ground", err)
	}
	return &v, nil
}

func (s *GroundReadStore) List(ctx context.Context) ([]*queries.GroundView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, address, payment_point, open_hour, close_hour, created_at, updated_at
		FROM grounds
		ORDER BY name`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list grounds", err)
	}
	defer rows.Close()

	grounds := make([]*queries.GroundView, 0)
	for rows.Next() {
		var v queries.GroundView
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.PaymentPoint, &v.OpenHour, &v.CloseHour, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ground row", err)
		}
		grounds = append(grounds, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ground rows", err)
	}
	return grounds, nil
}
