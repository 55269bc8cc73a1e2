package repository

import (
	"context"
	"errors"

	"futsal-reserve/internal/domain/ledger"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(db db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append writes one immutable ledger entry. The balance guard and the insert
// are a single conditional statement, and appends for a user are serialized
// by a row lock on the user record, so two concurrent debits cannot both
// pass the check on the same prior sum.
func (r *LedgerRepository) Append(ctx context.Context, e *ledger.Entry) error {
	if _, err := r.db.Exec(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, e.UserID()); err != nil {
		return infra.WrapRepoErr("failed to lock user for ledger append", err)
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO point_ledger (id, user_id, delta, reason, reference_id)
		SELECT $1, $2, $3::bigint, $4, $5
		WHERE $3::bigint >= 0
		   OR (SELECT COALESCE(SUM(delta), 0) FROM point_ledger WHERE user_id = $2) + $3::bigint >= 0`,
		e.ID(),
		e.UserID(),
		e.Delta(),
		e.Reason().String(),
		e.ReferenceID(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("ledger entry already exists for this reference", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to append ledger entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("balance would go negative", nil, infra.KindInsufficientBalance)
	}
	return nil
}

// Balance derives the current balance as the running sum of the user's
// entries.
func (r *LedgerRepository) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM point_ledger WHERE user_id = $1`,
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum ledger", err)
	}
	return balance, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeUniqueViolation
}
