package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Ground errors
	ErrGroundNotFound = errors.New("ground not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSlotUnavailable     = errors.New("slot unavailable")
	ErrNotOwner            = errors.New("not the reservation owner")

	// Ledger errors
	ErrInsufficientBalance = errors.New("insufficient point balance")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrDuplicateRequest       = errors.New("idempotency key reused with different parameters")
	ErrRequestInProgress      = errors.New("request with this idempotency key is still processing")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Storage errors
	ErrStorageFailed      = errors.New("storage operation failed")
	ErrIntegrityViolation = errors.New("ledger and reservation state diverged")
)
