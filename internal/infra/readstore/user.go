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

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

// FindByEmail returns the user view together with the stored password hash
// for credential verification.
func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, name, phone_number, role, password_hash
		FROM users
		WHERE email = $1`,
		email,
	)

	var v queries.AuthorizedUserView
	var hash string
	err := row.Scan(&v.ID, &v.Email, &v.Name, &v.PhoneNumber, &v.Role, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user", err)
	}
	return &v, hash, nil
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, name, phone_number, role
		FROM users
		WHERE id = $1`,
		id,
	)

	var v queries.AuthorizedUserView
	err := row.Scan(&v.ID, &v.Email, &v.Name, &v.PhoneNumber, &v.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &v, nil
}
