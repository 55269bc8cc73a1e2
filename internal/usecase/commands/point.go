package commands

import (
	"context"

	"futsal-reserve/internal/domain/ledger"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/pkg/errs"
	"futsal-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type PointCommands interface {
	// Charge credits purchased points to the user's ledger.
	Charge(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	// Adjust applies an admin correction with either sign. The balance guard
	// still rejects adjustments that would drive the balance negative.
	Adjust(ctx context.Context, targetUserID uuid.UUID, delta int64) (int64, error)
}

type pointCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPointCommands(uow shared.UnitOfWork) PointCommands {
	return &pointCommandsImpl{uow: uow}
}

func (c *pointCommandsImpl) Charge(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	return c.append(ctx, userID, amount, ledger.ReasonCharge)
}

func (c *pointCommandsImpl) Adjust(ctx context.Context, targetUserID uuid.UUID, delta int64) (int64, error) {
	return c.append(ctx, targetUserID, delta, ledger.ReasonAdminAdjust)
}

func (c *pointCommandsImpl) append(ctx context.Context, userID uuid.UUID, delta int64, reason ledger.Reason) (int64, error) {
	entry, err := ledger.NewEntry(userID, delta, reason, nil)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDomainValidation)
	}

	var newBalance int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Ledger().Append(ctx, entry); err != nil {
			if infra.IsKind(err, infra.KindInsufficientBalance) {
				return errs.ErrInsufficientBalance
			}
			return errs.Mark(err, errs.ErrStorageFailed)
		}

		balance, err := tx.Ledger().Balance(ctx, userID)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailed)
		}
		newBalance = balance

		// keep the cached aggregate in step; still not the source of truth
		return tx.Users().RefreshPointCache(ctx, userID, balance)
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
