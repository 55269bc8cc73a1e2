package shared

import (
	"context"
	"time"

	"futsal-reserve/internal/domain/ledger"
	"futsal-reserve/internal/domain/reservation"
	"futsal-reserve/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-write transaction with bounded retry on retryable
	// storage conflicts
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct access to command-side reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Ledger() LedgerRepository
	Users() UserRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyStore
	Reads() CommandReads
}

type CommandReads interface {
	GroundByID(ctx context.Context, id uuid.UUID) (*GroundSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
}

type ReservationRepository interface {
	CreateHold(ctx context.Context, res *reservation.Reservation) error
	Confirm(ctx context.Context, id uuid.UUID) error
	ReleaseHold(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
}

type LedgerRepository interface {
	Append(ctx context.Context, e *ledger.Entry) error
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	RefreshPointCache(ctx context.Context, userID uuid.UUID, balance int64) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, topic string, payload []byte, runAt time.Time) error
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

// IdempotencyStore backs caller-driven retry of the booking endpoint. A key
// is claimed before the booking runs, completed inside the committing
// transaction, and released again if the booking fails, so a retried key
// either replays the stored result or re-executes.
type IdempotencyStore interface {
	// TryClaim inserts the key in processing state. It reports false when a
	// live claim for the key already exists; expired claims are reclaimed.
	TryClaim(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, userID, reservationID uuid.UUID) error
	Release(ctx context.Context, key, userID uuid.UUID) error
}

// NotificationHook is fired after a booking or cancellation commits.
// Implementations must be fire-and-forget: a failed notification never
// fails the transaction that triggered it.
type NotificationHook interface {
	Notify(ctx context.Context, event NotificationEvent)
}

type NotificationEventType string

const (
	EventBooked    NotificationEventType = "BOOKED"
	EventCancelled NotificationEventType = "CANCELLED"
)

// Outbox topics for notification jobs written inside the booking and
// cancellation transactions.
const (
	TopicReservationBooked    = "reservation.booked"
	TopicReservationCancelled = "reservation.cancelled"
)

type NotificationEvent struct {
	Type          NotificationEventType `json:"type"`
	UserID        uuid.UUID             `json:"user_id"`
	ReservationID uuid.UUID             `json:"reservation_id"`
	NewBalance    int64                 `json:"new_balance"`
}
