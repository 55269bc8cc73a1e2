package repository

import (
	"context"

	"futsal-reserve/internal/domain/user"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, phone_number, role)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Name(),
		u.PhoneNumber(),
		u.Role().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return u.ID(), nil
}

// RefreshPointCache overwrites the cached users.point column. The cache is
// only ever written from the notification hook after a committed ledger
// change; reads that need correctness use the ledger sum instead.
func (r *UserRepository) RefreshPointCache(ctx context.Context, userID uuid.UUID, balance int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET point = $2, updated_at = now() WHERE id = $1`,
		userID, balance,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to refresh point cache", err)
	}
	return nil
}
