//go:build unit

package ledger_test

import (
	"testing"

	"futsal-reserve/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	userID := uuid.New()
	refID := uuid.New()

	tests := []struct {
		name        string
		delta       int64
		reason      ledger.Reason
		referenceID *uuid.UUID
		errIs       error
	}{
		{name: "charge is positive", delta: 5000, reason: ledger.ReasonCharge},
		{name: "charge cannot be negative", delta: -5000, reason: ledger.ReasonCharge, errIs: ledger.ErrWrongSignForReason},
		{name: "booking debit is negative", delta: -8000, reason: ledger.ReasonBookingDebit, referenceID: &refID},
		{name: "booking debit cannot be positive", delta: 8000, reason: ledger.ReasonBookingDebit, referenceID: &refID, errIs: ledger.ErrWrongSignForReason},
		{name: "booking debit requires a reference", delta: -8000, reason: ledger.ReasonBookingDebit, errIs: ledger.ErrMissingReference},
		{name: "refund is positive", delta: 8000, reason: ledger.ReasonCancellationRefund, referenceID: &refID},
		{name: "refund cannot be negative", delta: -8000, reason: ledger.ReasonCancellationRefund, referenceID: &refID, errIs: ledger.ErrWrongSignForReason},
		{name: "refund requires a reference", delta: 8000, reason: ledger.ReasonCancellationRefund, errIs: ledger.ErrMissingReference},
		{name: "admin adjust may be positive", delta: 3000, reason: ledger.ReasonAdminAdjust},
		{name: "admin adjust may be negative", delta: -3000, reason: ledger.ReasonAdminAdjust},
		{name: "zero delta is rejected", delta: 0, reason: ledger.ReasonCharge, errIs: ledger.ErrZeroDelta},
		{name: "unknown reason is rejected", delta: 100, reason: ledger.Reason("GIFT"), errIs: ledger.ErrInvalidReason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ledger.NewEntry(userID, tt.delta, tt.reason, tt.referenceID)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, entry.ID())
			assert.Equal(t, userID, entry.UserID())
			assert.Equal(t, tt.delta, entry.Delta())
			assert.Equal(t, tt.reason, entry.Reason())
			assert.Equal(t, tt.referenceID, entry.ReferenceID())
		})
	}
}

func TestReasonIsValid(t *testing.T) {
	valid := []ledger.Reason{
		ledger.ReasonCharge,
		ledger.ReasonBookingDebit,
		ledger.ReasonCancellationRefund,
		ledger.ReasonAdminAdjust,
	}
	for _, r := range valid {
		assert.True(t, r.IsValid(), r.String())
	}
	assert.False(t, ledger.Reason("").IsValid())
	assert.False(t, ledger.Reason("charge").IsValid())
}
