//go:build unit

package commands_test

import (
	"context"
	"testing"

	"futsal-reserve/internal/domain/ledger"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/pkg/errs"
	"futsal-reserve/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCharge(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("charge appends a positive entry and refreshes the cache", func(t *testing.T) {
		uow := newStubUoW()
		pointCommands := commands.NewPointCommands(uow)

		uow.tx.ledger.On("Append", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.UserID() == userID &&
				e.Delta() == 5000 &&
				e.Reason() == ledger.ReasonCharge &&
				e.ReferenceID() == nil
		})).Return(nil)
		uow.tx.ledger.On("Balance", ctx, userID).Return(int64(15000), nil)
		uow.tx.users.On("RefreshPointCache", ctx, userID, int64(15000)).Return(nil)

		balance, err := pointCommands.Charge(ctx, userID, 5000)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), balance)

		uow.tx.ledger.AssertExpectations(t)
		uow.tx.users.AssertExpectations(t)
	})

	t.Run("non-positive charge is a validation error", func(t *testing.T) {
		uow := newStubUoW()
		pointCommands := commands.NewPointCommands(uow)

		_, err := pointCommands.Charge(ctx, userID, 0)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)

		_, err = pointCommands.Charge(ctx, userID, -100)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)

		uow.tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("negative adjustment is allowed for admins", func(t *testing.T) {
		uow := newStubUoW()
		pointCommands := commands.NewPointCommands(uow)

		uow.tx.ledger.On("Append", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.Delta() == -3000 && e.Reason() == ledger.ReasonAdminAdjust
		})).Return(nil)
		uow.tx.ledger.On("Balance", ctx, userID).Return(int64(7000), nil)
		uow.tx.users.On("RefreshPointCache", ctx, userID, int64(7000)).Return(nil)

		balance, err := pointCommands.Adjust(ctx, userID, -3000)
		require.NoError(t, err)
		assert.Equal(t, int64(7000), balance)
	})

	t.Run("the balance guard rejects an overdraft adjustment", func(t *testing.T) {
		uow := newStubUoW()
		pointCommands := commands.NewPointCommands(uow)

		uow.tx.ledger.On("Append", ctx, mock.Anything).
			Return(infra.WrapRepoErr("balance guard", nil, infra.KindInsufficientBalance))

		_, err := pointCommands.Adjust(ctx, userID, -20000)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

		uow.tx.users.AssertNotCalled(t, "RefreshPointCache", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero adjustment is a validation error", func(t *testing.T) {
		uow := newStubUoW()
		pointCommands := commands.NewPointCommands(uow)

		_, err := pointCommands.Adjust(ctx, userID, 0)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}
