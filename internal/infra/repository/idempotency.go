package repository

import (
	"context"
	"errors"
	"time"

	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"
	"futsal-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

// TryClaim inserts the key in processing state. A conflicting row only loses
// its claim once it has expired, so the insert and the reclaim of stale rows
// are a single statement.
func (r *IdempotencyRepository) TryClaim(
	ctx context.Context,
	key, userID uuid.UUID,
	endpoint, requestHash string,
	expiresAt time.Time,
) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key, user_id) DO UPDATE
		SET endpoint = EXCLUDED.endpoint,
		    request_hash = EXCLUDED.request_hash,
		    status = 'processing',
		    result_reservation_id = NULL,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = now()
		WHERE idempotency_keys.expires_at < now()`,
		key, userID, endpoint, requestHash, expiresAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT key, user_id, endpoint, request_hash, status, result_reservation_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`,
		key, userID,
	)

	var rec shared.IdempotencyRecord
	err := row.Scan(&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &rec.Status, &rec.ResultReservationID, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID, reservationID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed', result_reservation_id = $3, updated_at = now()
		WHERE key = $1 AND user_id = $2 AND status = 'processing'`,
		key, userID, reservationID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no processing idempotency key to complete", nil, infra.KindNotFound)
	}
	return nil
}

// Release drops a processing claim after a failed booking so the caller can
// retry with the same key. Completed keys are never released.
func (r *IdempotencyRepository) Release(ctx context.Context, key, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM idempotency_keys
		WHERE key = $1 AND user_id = $2 AND status = 'processing'`,
		key, userID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
