package readstore

import (
	"context"

	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"
	"futsal-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type LedgerReadStore struct {
	db db.DBTX
}

func NewLedgerReadStore(db db.DBTX) *LedgerReadStore {
	return &LedgerReadStore{db: db}
}

// Balance is the authoritative balance, derived from the ledger. A user with
// no entries has balance zero.
func (s *LedgerReadStore) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(delta), 0)
		FROM point_ledger
		WHERE user_id = $1`,
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to read balance", err)
	}
	return balance, nil
}

func (s *LedgerReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.LedgerEntryView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, delta, reason, reference_id, created_at
		FROM point_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger entries", err)
	}
	defer rows.Close()

	entries := make([]*queries.LedgerEntryView, 0)
	for rows.Next() {
		var e queries.LedgerEntryView
		if err := rows.Scan(&e.ID, &e.UserID, &e.Delta, &e.Reason, &e.ReferenceID, &e.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ledger row", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ledger rows", err)
	}
	return entries, nil
}
