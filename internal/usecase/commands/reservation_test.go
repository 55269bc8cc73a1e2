//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"futsal-reserve/internal/domain/ledger"
	"futsal-reserve/internal/domain/reservation"
	"futsal-reserve/internal/domain/user"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/pkg/clock"
	"futsal-reserve/internal/pkg/errs"
	"futsal-reserve/internal/usecase/commands"
	"futsal-reserve/internal/usecase/queries"
	"futsal-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testNow       = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	testSlotStart = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	testSlotEnd   = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
)

type reservationFixture struct {
	uow      *stubUoW
	queries  *MockReservationQueries
	hook     *recordingHook
	commands commands.ReservationCommands
	groundID uuid.UUID
	userID   uuid.UUID
	key      uuid.UUID
}

func newReservationFixture() *reservationFixture {
	uow := newStubUoW()
	resQueries := &MockReservationQueries{}
	hook := &recordingHook{}
	clk := clock.NewMockClock(testNow)
	factory := reservation.NewFactory(clk)

	return &reservationFixture{
		uow:      uow,
		queries:  resQueries,
		hook:     hook,
		commands: commands.NewReservationCommands(uow, factory, resQueries, uow.tx.idempotency, hook, clk),
		groundID: uuid.New(),
		userID:   uuid.New(),
		key:      uuid.New(),
	}
}

func (f *reservationFixture) groundSnapshot() *shared.GroundSnapshot {
	return &shared.GroundSnapshot{
		ID:           f.groundID,
		Name:         "Gangnam Futsal",
		Address:      "1 Teheran-ro",
		PaymentPoint: 8000,
		OpenHour:     9,
		CloseHour:    23,
	}
}

func (f *reservationFixture) createParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		GroundID:  f.groundID,
		StartTime: testSlotStart,
		EndTime:   testSlotEnd,
	}
}

// expectClaim lets the fixture's key win a fresh claim.
func (f *reservationFixture) expectClaim(ctx context.Context) {
	f.uow.tx.idempotency.On("TryClaim", ctx, f.key, f.userID,
		mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
}

// expectCompletion covers the in-transaction tail of a successful booking:
// the outbox job and the completed idempotency key.
func (f *reservationFixture) expectCompletion(ctx context.Context) {
	f.uow.tx.notifications.On("CreateJob", ctx, shared.TopicReservationBooked, mock.Anything, testNow).Return(nil)
	f.uow.tx.idempotency.On("MarkCompleted", ctx, f.key, f.userID, mock.Anything).Return(nil)
}

func fingerprintOf(t *testing.T, params commands.CreateReservationParams) string {
	t.Helper()
	data, err := json.Marshal(params)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("booking debits the price and confirms the hold", func(t *testing.T) {
		f := newReservationFixture()
		f.expectClaim(ctx)
		f.uow.reads.On("GroundByID", ctx, f.groundID).Return(f.groundSnapshot(), nil)
		f.uow.tx.reservations.On("CreateHold", ctx, mock.Anything).Return(nil)
		f.uow.tx.ledger.On("Append", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.Delta() == -8000 &&
				e.Reason() == ledger.ReasonBookingDebit &&
				e.ReferenceID() != nil
		})).Return(nil)
		f.uow.tx.reservations.On("Confirm", ctx, mock.Anything).Return(nil)
		f.uow.tx.ledger.On("Balance", ctx, f.userID).Return(int64(2000), nil)
		f.expectCompletion(ctx)
		f.queries.On("GetByIDSystem", ctx, mock.Anything).Return(&queries.ReservationView{
			GroundID: f.groundID,
			UserID:   f.userID,
			Status:   reservation.StatusConfirmed.String(),
		}, nil)

		view, err := f.commands.CreateReservation(ctx, f.userID, f.key, f.createParams())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed.String(), view.Status)

		require.Len(t, f.hook.events, 1)
		assert.Equal(t, shared.EventBooked, f.hook.events[0].Type)
		assert.Equal(t, f.userID, f.hook.events[0].UserID)
		assert.Equal(t, int64(2000), f.hook.events[0].NewBalance)

		f.uow.tx.reservations.AssertExpectations(t)
		f.uow.tx.ledger.AssertExpectations(t)
		f.uow.tx.notifications.AssertExpectations(t)
		f.uow.tx.idempotency.AssertExpectations(t)
	})

	t.Run("zero price ground books without touching the ledger", func(t *testing.T) {
		f := newReservationFixture()
		snap := f.groundSnapshot()
		snap.PaymentPoint = 0

		f.expectClaim(ctx)
		f.uow.reads.On("GroundByID", ctx, f.groundID).Return(snap, nil)
		f.uow.tx.reservations.On("CreateHold", ctx, mock.Anything).Return(nil)
		f.uow.tx.reservations.On("Confirm", ctx, mock.Anything).Return(nil)
		f.uow.tx.ledger.On("Balance", ctx, f.userID).Return(int64(10000), nil)
		f.expectCompletion(ctx)
		f.queries.On("GetByIDSystem", ctx, mock.Anything).Return(&queries.ReservationView{
			GroundID: f.groundID,
			UserID:   f.userID,
			Status:   reservation.StatusConfirmed.String(),
		}, nil)

		view, err := f.commands.CreateReservation(ctx, f.userID, f.key, f.createParams())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed.String(), view.Status)

		f.uow.tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		require.Len(t, f.hook.events, 1)
		assert.Equal(t, int64(10000), f.hook.events[0].NewBalance)
	})

	t.Run("occupied slot maps to ErrSlotUnavailable", func(t *testing.T) {
		f := newReservationFixture()
		f.expectClaim(ctx)
		f.uow.reads.On("GroundByID", ctx, f.groundID).Return(f.groundSnapshot(), nil)
		f.uow.tx.reservations.On("CreateHold", ctx, mock.Anything).
			Return(infra.WrapRepoErr("slot taken", nil, infra.KindConflict))
		f.uow.tx.idempotency.On("Release", ctx, f.key, f.userID).Return(nil)

		_, err := f.commands.CreateReservation(ctx, f.userID, f.key, f.createParams())
		assert.ErrorIs(t, err, errs.ErrSlotUnavailable)

		f.uow.tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		f.uow.tx.idempotency.AssertCalled(t, "Release", ctx, f.key, f.userID)
		assert.Empty(t, f.hook.events)
	})

	t.Run("insufficient balance releases the hold and the key before aborting", func(t *testing.T) {
		f := newReservationFixture()
		f.expectClaim(ctx)
		f.uow.reads.On("GroundByID", ctx, f.groundID).Return(f.groundSnapshot(), nil)
		f.uow.tx.reservations.On("CreateHold", ctx, mock.Anything).Return(nil)
		f.uow.tx.ledger.On("Append", ctx, mock.Anything).
			Return(infra.WrapRepoErr("balance guard", nil, infra.KindInsufficientBalance))
		f.uow.tx.reservations.On("ReleaseHold", ctx, mock.Anything).Return(nil)
		f.uow.tx.idempotency.On("Release", ctx, f.key, f.userID).Return(nil)

		_, err := f.commands.CreateReservation(ctx, f.userID, f.key, f.createParams())
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

		f.uow.tx.reservations.AssertCalled(t, "ReleaseHold", ctx, mock.Anything)
		f.uow.tx.reservations.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
		f.uow.tx.idempotency.AssertCalled(t, "Release", ctx, f.key, f.userID)
		assert.Empty(t, f.hook.events)
	})

	t.Run("unknown ground maps to ErrGroundNotFound", func(t *testing.T) {
		f := newReservationFixture()
		f.expectClaim(ctx)
		f.uow.reads.On("GroundByID", ctx, f.groundID).
			Return(nil, infra.WrapRepoErr("no ground", nil, infra.KindNotFound))
		f.uow.tx.idempotency.On("Release", ctx, f.key, f.userID).Return(nil)

		_, err := f.commands.CreateReservation(ctx, f.userID, f.key, f.createParams())
		assert.ErrorIs(t, err, errs.ErrGroundNotFound)
	})

	t.Run("misaligned slot is a validation error before the ground is loaded", func(t *testing.T) {
		f := newReservationFixture()
		params := f.createParams()
		params.StartTime = params.StartTime.Add(30 * time.Minute)

		f.expectClaim(ctx)
		f.uow.tx.idempotency.On("Release", ctx, f.key, f.userID).Return(nil)

		_, err := f.commands.CreateReservation(ctx, f.userID, f.key, params)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)

		f.uow.reads.AssertNotCalled(t, "GroundByID", mock.Anything, mock.Anything)
	})

	t.Run("slot in the past is a validation error", func(t *testing.T) {
		f := newReservationFixture()
		params := f.createParams()
		params.StartTime = testNow.Add(-2 * time.Hour)
		params.EndTime = testNow.Add(-1 * time.Hour)

		f.expectClaim(ctx)
		f.uow.reads.On("GroundByID", ctx, f.groundID).Return(f.groundSnapshot(), nil)
		f.uow.tx.idempotency.On("Release", ctx, f.key, f.userID).Return(nil)

		_, err := f.commands.CreateReservation(ctx, f.userID, f.key, params)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestCreateReservationIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("a completed key replays the original booking", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()
		params := f.createParams()

		f.uow.tx.idempotency.On("TryClaim", ctx, f.key, f.userID,
			mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		f.uow.tx.idempotency.On("Get", ctx, f.key, f.userID).Return(&shared.IdempotencyRecord{
			Key:                 f.key,
			UserID:              f.userID,
			RequestHash:         fingerprintOf(t, params),
			Status:              shared.IdempotencyStatusCompleted,
			ResultReservationID: &reservationID,
		}, nil)
		f.queries.On("GetByIDSystem", ctx, reservationID).Return(&queries.ReservationView{
			ID:     reservationID,
			UserID: f.userID,
			Status: reservation.StatusConfirmed.String(),
		}, nil)

		view, err := f.commands.CreateReservation(ctx, f.userID, f.key, params)
		require.NoError(t, err)
		assert.Equal(t, reservationID, view.ID)

		// replay must not book again or fire the hook a second time
		f.uow.tx.reservations.AssertNotCalled(t, "CreateHold", mock.Anything, mock.Anything)
		f.uow.tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		assert.Empty(t, f.hook.events)
	})

	t.Run("a key still processing reports the request as in flight", func(t *testing.T) {
		f := newReservationFixture()
		params := f.createParams()

		f.uow.tx.idempotency.On("TryClaim", ctx, f.key, f.userID,
			mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		f.uow.tx.idempotency.On("Get", ctx, f.key, f.userID).Return(&shared.IdempotencyRecord{
			Key:         f.key,
			UserID:      f.userID,
			RequestHash: fingerprintOf(t, params),
			Status:      shared.IdempotencyStatusProcessing,
		}, nil)

		_, err := f.commands.CreateReservation(ctx, f.userID, f.key, params)
		assert.ErrorIs(t, err, errs.ErrRequestInProgress)
	})

	t.Run("key reuse with different parameters is rejected", func(t *testing.T) {
		f := newReservationFixture()

		f.uow.tx.idempotency.On("TryClaim", ctx, f.key, f.userID,
			mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		f.uow.tx.idempotency.On("Get", ctx, f.key, f.userID).Return(&shared.IdempotencyRecord{
			Key:         f.key,
			UserID:      f.userID,
			RequestHash: "a-hash-of-some-other-request",
			Status:      shared.IdempotencyStatusCompleted,
		}, nil)

		_, err := f.commands.CreateReservation(ctx, f.userID, f.key, f.createParams())
		assert.ErrorIs(t, err, errs.ErrDuplicateRequest)

		f.queries.AssertNotCalled(t, "GetByIDSystem", mock.Anything, mock.Anything)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	confirmedSnapshot := func(f *reservationFixture, id uuid.UUID) *shared.ReservationSnapshot {
		return &shared.ReservationSnapshot{
			ID:             id,
			GroundID:       f.groundID,
			UserID:         f.userID,
			Status:         reservation.StatusConfirmed.String(),
			PriceAtBooking: 8000,
			StartTime:      testSlotStart,
			EndTime:        testSlotEnd,
		}
	}

	expectCancelJob := func(f *reservationFixture) {
		f.uow.tx.notifications.On("CreateJob", ctx, shared.TopicReservationCancelled, mock.Anything, testNow).Return(nil)
	}

	t.Run("owner cancellation refunds the booked price", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()

		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(confirmedSnapshot(f, reservationID), nil)
		f.uow.tx.reservations.On("Cancel", ctx, reservationID).Return(true, nil)
		f.uow.tx.ledger.On("Append", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			return e.Delta() == 8000 &&
				e.Reason() == ledger.ReasonCancellationRefund &&
				e.ReferenceID() != nil && *e.ReferenceID() == reservationID
		})).Return(nil)
		f.uow.tx.ledger.On("Balance", ctx, f.userID).Return(int64(10000), nil)
		expectCancelJob(f)
		f.queries.On("GetByIDSystem", ctx, reservationID).Return(&queries.ReservationView{
			ID:     reservationID,
			UserID: f.userID,
			Status: reservation.StatusCancelled.String(),
		}, nil)

		view, err := f.commands.CancelReservation(ctx, f.userID, user.RoleUser, reservationID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled.String(), view.Status)

		require.Len(t, f.hook.events, 1)
		assert.Equal(t, shared.EventCancelled, f.hook.events[0].Type)
		assert.Equal(t, int64(10000), f.hook.events[0].NewBalance)

		f.uow.tx.ledger.AssertExpectations(t)
		f.uow.tx.notifications.AssertExpectations(t)
	})

	t.Run("a zero price booking cancels without a refund entry", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()
		snap := confirmedSnapshot(f, reservationID)
		snap.PriceAtBooking = 0

		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(snap, nil)
		f.uow.tx.reservations.On("Cancel", ctx, reservationID).Return(true, nil)
		f.uow.tx.ledger.On("Balance", ctx, f.userID).Return(int64(10000), nil)
		expectCancelJob(f)
		f.queries.On("GetByIDSystem", ctx, reservationID).Return(&queries.ReservationView{
			ID:     reservationID,
			UserID: f.userID,
			Status: reservation.StatusCancelled.String(),
		}, nil)

		view, err := f.commands.CancelReservation(ctx, f.userID, user.RoleUser, reservationID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled.String(), view.Status)

		f.uow.tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		require.Len(t, f.hook.events, 1)
	})

	t.Run("cancelling an already cancelled reservation issues no refund", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()
		snap := confirmedSnapshot(f, reservationID)
		snap.Status = reservation.StatusCancelled.String()

		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(snap, nil)
		f.queries.On("GetByIDSystem", ctx, reservationID).Return(&queries.ReservationView{
			ID:     reservationID,
			UserID: f.userID,
			Status: reservation.StatusCancelled.String(),
		}, nil)

		view, err := f.commands.CancelReservation(ctx, f.userID, user.RoleUser, reservationID)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled.String(), view.Status)

		f.uow.tx.reservations.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
		f.uow.tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		f.uow.tx.notifications.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.hook.events)
	})

	t.Run("losing the cancel race still succeeds without a second refund", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()
		cancelled := confirmedSnapshot(f, reservationID)
		cancelled.Status = reservation.StatusCancelled.String()

		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(confirmedSnapshot(f, reservationID), nil).Once()
		f.uow.tx.reservations.On("Cancel", ctx, reservationID).Return(false, nil)
		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(cancelled, nil).Once()
		f.queries.On("GetByIDSystem", ctx, reservationID).Return(&queries.ReservationView{
			ID:     reservationID,
			UserID: f.userID,
			Status: reservation.StatusCancelled.String(),
		}, nil)

		_, err := f.commands.CancelReservation(ctx, f.userID, user.RoleUser, reservationID)
		require.NoError(t, err)

		f.uow.tx.ledger.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		assert.Empty(t, f.hook.events)
	})

	t.Run("a duplicate refund row is tolerated", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()

		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(confirmedSnapshot(f, reservationID), nil)
		f.uow.tx.reservations.On("Cancel", ctx, reservationID).Return(true, nil)
		f.uow.tx.ledger.On("Append", ctx, mock.Anything).
			Return(infra.WrapRepoErr("refund exists", nil, infra.KindDuplicateKey))
		f.uow.tx.ledger.On("Balance", ctx, f.userID).Return(int64(10000), nil)
		expectCancelJob(f)
		f.queries.On("GetByIDSystem", ctx, reservationID).Return(&queries.ReservationView{
			ID:     reservationID,
			UserID: f.userID,
			Status: reservation.StatusCancelled.String(),
		}, nil)

		_, err := f.commands.CancelReservation(ctx, f.userID, user.RoleUser, reservationID)
		assert.NoError(t, err)
	})

	t.Run("a stranger cannot cancel", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()
		stranger := uuid.New()

		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(confirmedSnapshot(f, reservationID), nil)

		_, err := f.commands.CancelReservation(ctx, stranger, user.RoleUser, reservationID)
		assert.ErrorIs(t, err, errs.ErrNotOwner)

		f.uow.tx.reservations.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("an admin can cancel on behalf of the owner", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()
		admin := uuid.New()

		f.uow.reads.On("ReservationByID", ctx, reservationID).Return(confirmedSnapshot(f, reservationID), nil)
		f.uow.tx.reservations.On("Cancel", ctx, reservationID).Return(true, nil)
		f.uow.tx.ledger.On("Append", ctx, mock.MatchedBy(func(e *ledger.Entry) bool {
			// the refund goes to the owner, not the acting admin
			return e.UserID() == f.userID && e.Delta() == 8000
		})).Return(nil)
		f.uow.tx.ledger.On("Balance", ctx, f.userID).Return(int64(10000), nil)
		expectCancelJob(f)
		f.queries.On("GetByIDSystem", ctx, reservationID).Return(&queries.ReservationView{
			ID:     reservationID,
			UserID: f.userID,
			Status: reservation.StatusCancelled.String(),
		}, nil)

		_, err := f.commands.CancelReservation(ctx, admin, user.RoleAdmin, reservationID)
		require.NoError(t, err)
		f.uow.tx.ledger.AssertExpectations(t)
	})

	t.Run("unknown reservation maps to ErrReservationNotFound", func(t *testing.T) {
		f := newReservationFixture()
		reservationID := uuid.New()

		f.uow.reads.On("ReservationByID", ctx, reservationID).
			Return(nil, infra.WrapRepoErr("no row", nil, infra.KindNotFound))

		_, err := f.commands.CancelReservation(ctx, f.userID, user.RoleUser, reservationID)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}
