//go:build unit

package commands_test

import (
	"context"
	"time"

	"futsal-reserve/internal/domain/ledger"
	"futsal-reserve/internal/domain/reservation"
	"futsal-reserve/internal/domain/user"
	"futsal-reserve/internal/usecase/queries"
	"futsal-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CreateHold(ctx context.Context, res *reservation.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) Confirm(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) ReleaseHold(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, e *ledger.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockLedgerRepository) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) RefreshPointCache(ctx context.Context, userID uuid.UUID, balance int64) error {
	args := m.Called(ctx, userID, balance)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateJob(ctx context.Context, topic string, payload []byte, runAt time.Time) error {
	args := m.Called(ctx, topic, payload, runAt)
	return args.Error(0)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) TryClaim(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, key, userID, endpoint, requestHash, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	args := m.Called(ctx, key, userID)
	if rec := args.Get(0); rec != nil {
		return rec.(*shared.IdempotencyRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdempotencyStore) MarkCompleted(ctx context.Context, key, userID, reservationID uuid.UUID) error {
	args := m.Called(ctx, key, userID, reservationID)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key, userID uuid.UUID) error {
	args := m.Called(ctx, key, userID)
	return args.Error(0)
}

type MockCommandReads struct {
	mock.Mock
}

func (m *MockCommandReads) GroundByID(ctx context.Context, id uuid.UUID) (*shared.GroundSnapshot, error) {
	args := m.Called(ctx, id)
	if snap := args.Get(0); snap != nil {
		return snap.(*shared.GroundSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	args := m.Called(ctx, id)
	if snap := args.Get(0); snap != nil {
		return snap.(*shared.ReservationSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubTx and stubUoW wire the mocks into the transaction ports. Within runs
// the closure once with no retry, so every expectation fires exactly once.
type stubTx struct {
	reservations  *MockReservationRepository
	ledger        *MockLedgerRepository
	users         *MockUserRepository
	notifications *MockNotificationRepository
	idempotency   *MockIdempotencyStore
	reads         *MockCommandReads
}

func (t *stubTx) Reservations() shared.ReservationRepository   { return t.reservations }
func (t *stubTx) Ledger() shared.LedgerRepository              { return t.ledger }
func (t *stubTx) Users() shared.UserRepository                 { return t.users }
func (t *stubTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *stubTx) Idempotency() shared.IdempotencyStore         { return t.idempotency }
func (t *stubTx) Reads() shared.CommandReads                   { return t.reads }

type stubUoW struct {
	tx    *stubTx
	reads *MockCommandReads
}

func newStubUoW() *stubUoW {
	reads := &MockCommandReads{}
	return &stubUoW{
		tx: &stubTx{
			reservations:  &MockReservationRepository{},
			ledger:        &MockLedgerRepository{},
			users:         &MockUserRepository{},
			notifications: &MockNotificationRepository{},
			idempotency:   &MockIdempotencyStore{},
			reads:         reads,
		},
		reads: reads,
	}
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUoW) CommandReads() shared.CommandReads { return u.reads }

type MockReservationQueries struct {
	mock.Mock
}

func (m *MockReservationQueries) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*queries.ReservationView, error) {
	args := m.Called(ctx, actorID, actorRole, id)
	if view := args.Get(0); view != nil {
		return view.(*queries.ReservationView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationQueries) GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	args := m.Called(ctx, id)
	if view := args.Get(0); view != nil {
		return view.(*queries.ReservationView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationQueries) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*queries.ReservationListItem, error) {
	args := m.Called(ctx, userID, limit)
	if items := args.Get(0); items != nil {
		return items.([]*queries.ReservationListItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationQueries) ListByGround(ctx context.Context, groundID uuid.UUID, limit int) ([]*queries.ReservationView, error) {
	args := m.Called(ctx, groundID, limit)
	if views := args.Get(0); views != nil {
		return views.([]*queries.ReservationView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationQueries) OccupiedSlots(ctx context.Context, groundID uuid.UUID, from, to time.Time) ([]*queries.OccupiedSlot, error) {
	args := m.Called(ctx, groundID, from, to)
	if slots := args.Get(0); slots != nil {
		return slots.([]*queries.OccupiedSlot), args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingHook captures post-commit notifications for assertions.
type recordingHook struct {
	events []shared.NotificationEvent
}

func (h *recordingHook) Notify(_ context.Context, event shared.NotificationEvent) {
	h.events = append(h.events, event)
}
