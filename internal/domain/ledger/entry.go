package ledger

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrZeroDelta          = errors.New("ledger delta cannot be zero")
	ErrInvalidReason      = errors.New("invalid ledger reason")
	ErrWrongSignForReason = errors.New("delta sign does not match reason")
	ErrMissingReference   = errors.New("reason requires a reservation reference")
)

type Reason string

const (
	ReasonCharge             Reason = "CHARGE"
	ReasonBookingDebit       Reason = "BOOKING_DEBIT"
	ReasonCancellationRefund Reason = "CANCELLATION_REFUND"
	ReasonAdminAdjust        Reason = "ADMIN_ADJUST"
)

func (r Reason) IsValid() bool {
	switch r {
	case ReasonCharge, ReasonBookingDebit, ReasonCancellationRefund, ReasonAdminAdjust:
		return true
	default:
		return false
	}
}

func (r Reason) String() string {
	return string(r)
}

// Entry is one immutable point-balance mutation. Entries are append-only:
// corrections are expressed as new compensating entries, never edits. Entries
// are never loaded back as entities; history reads go through the read store.
type Entry struct {
	id          uuid.UUID
	userID      uuid.UUID
	delta       int64
	reason      Reason
	referenceID *uuid.UUID
}

func NewEntry(userID uuid.UUID, delta int64, reason Reason, referenceID *uuid.UUID) (*Entry, error) {
	if delta == 0 {
		return nil, ErrZeroDelta
	}
	if !reason.IsValid() {
		return nil, ErrInvalidReason
	}

	switch reason {
	case ReasonCharge:
		if delta < 0 {
			return nil, ErrWrongSignForReason
		}
	case ReasonBookingDebit:
		if delta > 0 {
			return nil, ErrWrongSignForReason
		}
		if referenceID == nil {
			return nil, ErrMissingReference
		}
	case ReasonCancellationRefund:
		if delta < 0 {
			return nil, ErrWrongSignForReason
		}
		if referenceID == nil {
			return nil, ErrMissingReference
		}
	case ReasonAdminAdjust:
		// either sign; the balance guard still applies at append time
	}

	return &Entry{
		id:          uuid.New(),
		userID:      userID,
		delta:       delta,
		reason:      reason,
		referenceID: referenceID,
	}, nil
}

func (e *Entry) ID() uuid.UUID           { return e.id }
func (e *Entry) UserID() uuid.UUID       { return e.userID }
func (e *Entry) Delta() int64            { return e.delta }
func (e *Entry) Reason() Reason          { return e.reason }
func (e *Entry) ReferenceID() *uuid.UUID { return e.referenceID }
