package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"futsal-reserve/internal/domain/ground"
	"futsal-reserve/internal/domain/ledger"
	"futsal-reserve/internal/domain/reservation"
	"futsal-reserve/internal/domain/user"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/pkg/clock"
	"futsal-reserve/internal/pkg/errs"
	"futsal-reserve/internal/usecase/queries"
	"futsal-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	bookingEndpoint = "POST /reservations"
	idempotencyTTL  = 24 * time.Hour
)

type CreateReservationParams struct {
	GroundID  uuid.UUID `json:"ground_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, userID, idempotencyKey uuid.UUID, params CreateReservationParams) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, actorID uuid.UUID, actorRole user.Role, reservationID uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	idempotency        shared.IdempotencyStore
	hook               shared.NotificationHook
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	idempotency shared.IdempotencyStore,
	hook shared.NotificationHook,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		factory:            factory,
		reservationQueries: reservationQueries,
		idempotency:        idempotency,
		hook:               hook,
		clock:              clk,
	}
}

// CreateReservation books a slot and debits the user's point balance as one
// atomic unit. The caller supplies an idempotency key: a retry after a
// timeout replays the stored result instead of racing its own first attempt
// for the slot. The key is claimed before the booking runs, completed inside
// the committing transaction, and released if the booking fails.
func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	userID, idempotencyKey uuid.UUID,
	params CreateReservationParams,
) (*queries.ReservationView, error) {
	requestHash := requestFingerprint(params)

	claimed, err := c.idempotency.TryClaim(
		ctx, idempotencyKey, userID,
		bookingEndpoint, requestHash,
		c.clock.Now().Add(idempotencyTTL),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailed)
	}
	if !claimed {
		return c.replayClaim(ctx, idempotencyKey, userID, requestHash)
	}

	view, err := c.bookNewReservation(ctx, userID, idempotencyKey, params)
	if err != nil {
		// give the key back so the caller can retry the failed booking
		if releaseErr := c.idempotency.Release(ctx, idempotencyKey, userID); releaseErr != nil {
			slog.Warn("failed to release idempotency key",
				"key", idempotencyKey.String(),
				"error", releaseErr.Error())
		}
		return nil, err
	}
	return view, nil
}

func (c *reservationCommandsImpl) replayClaim(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
) (*queries.ReservationView, error) {
	record, err := c.idempotency.Get(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailed)
	}
	if record.RequestHash != requestHash {
		return nil, errs.ErrDuplicateRequest
	}

	switch record.Status {
	case shared.IdempotencyStatusCompleted:
		if record.ResultReservationID == nil {
			return nil, errs.Mark(errs.New("completed idempotency key has no result"), errs.ErrIntegrityViolation)
		}
		return c.reservationQueries.GetByIDSystem(ctx, *record.ResultReservationID)
	case shared.IdempotencyStatusProcessing:
		return nil, errs.ErrRequestInProgress
	default:
		return nil, errs.Mark(errs.New("unexpected idempotency key status"), errs.ErrIntegrityViolation)
	}
}

func (c *reservationCommandsImpl) bookNewReservation(
	ctx context.Context,
	userID, idempotencyKey uuid.UUID,
	params CreateReservationParams,
) (*queries.ReservationView, error) {
	slot, err := reservation.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	groundEntity, err := c.loadGround(ctx, params.GroundID)
	if err != nil {
		return nil, err
	}

	reservationEntity, err := c.factory.CreateReservation(groundEntity, userID, slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	newBalance, err := c.executeBooking(ctx, reservationEntity, idempotencyKey)
	if err != nil {
		return nil, err
	}

	c.hook.Notify(ctx, shared.NotificationEvent{
		Type:          shared.EventBooked,
		UserID:        userID,
		ReservationID: reservationEntity.ID(),
		NewBalance:    newBalance,
	})

	return c.reservationQueries.GetByIDSystem(ctx, reservationEntity.ID())
}

// executeBooking runs the transactional core: hold the slot (the exclusion
// constraint arbitrates concurrent bookings), append the debit (the
// conditional insert arbitrates the balance), confirm, enqueue the outbox
// job, complete the idempotency key, commit. Failing the debit releases the
// hold before aborting, so no path leaves a held slot behind.
func (c *reservationCommandsImpl) executeBooking(
	ctx context.Context,
	reservationEntity *reservation.Reservation,
	idempotencyKey uuid.UUID,
) (int64, error) {
	var newBalance int64

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().CreateHold(ctx, reservationEntity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrSlotUnavailable
			}
			return errs.Mark(err, errs.ErrStorageFailed)
		}

		reservationID := reservationEntity.ID()

		// a free ground writes no ledger row; there is nothing to debit
		if price := reservationEntity.PriceAtBooking().Points(); price > 0 {
			debit, err := ledger.NewEntry(
				reservationEntity.UserID(),
				-price,
				ledger.ReasonBookingDebit,
				&reservationID,
			)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}

			if err := tx.Ledger().Append(ctx, debit); err != nil {
				if infra.IsKind(err, infra.KindInsufficientBalance) {
					// compensate: give the slot back before aborting
					if releaseErr := tx.Reservations().ReleaseHold(ctx, reservationID); releaseErr != nil {
						return errs.Mark(releaseErr, errs.ErrStorageFailed)
					}
					return errs.ErrInsufficientBalance
				}
				return errs.Mark(err, errs.ErrStorageFailed)
			}
		}

		if err := tx.Reservations().Confirm(ctx, reservationID); err != nil {
			// the hold vanished after we debited for it
			return errs.Mark(err, errs.ErrIntegrityViolation)
		}

		balance, err := tx.Ledger().Balance(ctx, reservationEntity.UserID())
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailed)
		}
		newBalance = balance

		if err := c.enqueueOutboxJob(ctx, tx, shared.TopicReservationBooked, shared.NotificationEvent{
			Type:          shared.EventBooked,
			UserID:        reservationEntity.UserID(),
			ReservationID: reservationID,
			NewBalance:    newBalance,
		}); err != nil {
			return err
		}

		return c.completeClaim(ctx, tx, idempotencyKey, reservationEntity.UserID(), reservationID)
	})
	if err != nil {
		if errors.Is(err, errs.ErrIntegrityViolation) {
			slog.Error("booking aborted on integrity violation",
				"reservation_id", reservationEntity.ID().String(),
				"error", err.Error())
		}
		return 0, err
	}

	return newBalance, nil
}

// CancelReservation releases a confirmed reservation's slot and refunds the
// price that was charged at booking time. Cancelling an already-cancelled
// reservation succeeds without touching the ledger.
func (c *reservationCommandsImpl) CancelReservation(
	ctx context.Context,
	actorID uuid.UUID,
	actorRole user.Role,
	reservationID uuid.UUID,
) (*queries.ReservationView, error) {
	var (
		ownerID          uuid.UUID
		newBalance       int64
		alreadyCancelled bool
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrStorageFailed)
		}

		if snap.UserID != actorID && actorRole != user.RoleAdmin {
			return errs.ErrNotOwner
		}
		ownerID = snap.UserID

		if snap.Status == reservation.StatusCancelled.String() {
			alreadyCancelled = true
			return nil
		}

		transitioned, err := tx.Reservations().Cancel(ctx, reservationID)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailed)
		}
		if !transitioned {
			// lost a cancellation race; re-read to distinguish that from a
			// reservation that never was confirmed
			recheck, err := tx.Reads().ReservationByID(ctx, reservationID)
			if err != nil {
				return errs.Mark(err, errs.ErrStorageFailed)
			}
			if recheck.Status == reservation.StatusCancelled.String() {
				alreadyCancelled = true
				return nil
			}
			return errs.Mark(errs.New("cancel guard matched no row"), errs.ErrIntegrityViolation)
		}

		// a free booking wrote no debit, so there is nothing to refund
		if snap.PriceAtBooking > 0 {
			refund, err := ledger.NewEntry(ownerID, snap.PriceAtBooking, ledger.ReasonCancellationRefund, &reservationID)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if err := tx.Ledger().Append(ctx, refund); err != nil {
				// a refund for this reservation already exists; the ledger's
				// uniqueness makes double refunds impossible
				if infra.IsKind(err, infra.KindDuplicateKey) {
					slog.Warn("refund already present for cancelled reservation",
						"reservation_id", reservationID.String())
				} else {
					return errs.Mark(err, errs.ErrStorageFailed)
				}
			}
		}

		newBalance, err = tx.Ledger().Balance(ctx, ownerID)
		if err != nil {
			return errs.Mark(err, errs.ErrStorageFailed)
		}

		return c.enqueueOutboxJob(ctx, tx, shared.TopicReservationCancelled, shared.NotificationEvent{
			Type:          shared.EventCancelled,
			UserID:        ownerID,
			ReservationID: reservationID,
			NewBalance:    newBalance,
		})
	})
	if err != nil {
		return nil, err
	}

	if !alreadyCancelled {
		c.hook.Notify(ctx, shared.NotificationEvent{
			Type:          shared.EventCancelled,
			UserID:        ownerID,
			ReservationID: reservationID,
			NewBalance:    newBalance,
		})
	}

	return c.reservationQueries.GetByIDSystem(ctx, reservationID)
}

// enqueueOutboxJob writes the notification job in the same transaction as
// the state change, so a committed booking always has its outbox row.
func (c *reservationCommandsImpl) enqueueOutboxJob(
	ctx context.Context,
	tx shared.Tx,
	topic string,
	event shared.NotificationEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Mark(err, errs.ErrStorageFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, topic, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrStorageFailed)
	}
	return nil
}

func (c *reservationCommandsImpl) completeClaim(
	ctx context.Context,
	tx shared.Tx,
	idempotencyKey, userID, reservationID uuid.UUID,
) error {
	if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, userID, reservationID); err != nil {
		return errs.Mark(err, errs.ErrStorageFailed)
	}
	return nil
}

func (c *reservationCommandsImpl) loadGround(ctx context.Context, groundID uuid.UUID) (*ground.Ground, error) {
	snap, err := c.uow.CommandReads().GroundByID(ctx, groundID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrGroundNotFound
		}
		return nil, errs.Mark(err, errs.ErrStorageFailed)
	}

	return ground.NewGround(snap.ID, snap.Name, snap.Address, snap.PaymentPoint, snap.OpenHour, snap.CloseHour)
}

// requestFingerprint ties an idempotency key to the request body it was first
// used with, so key reuse with different parameters is detectable.
func requestFingerprint(params CreateReservationParams) string {
	data, _ := json.Marshal(params)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
