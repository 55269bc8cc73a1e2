//go:build unit

package ground_test

import (
	"testing"
	"time"

	"futsal-reserve/internal/domain/ground"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGround(t *testing.T) {
	tests := []struct {
		name         string
		groundName   string
		paymentPoint int64
		openHour     int
		closeHour    int
		errIs        error
	}{
		{name: "basic success case", groundName: "Gangnam Futsal", paymentPoint: 8000, openHour: 9, closeHour: 23},
		{name: "free ground", groundName: "Community Pitch", paymentPoint: 0, openHour: 0, closeHour: 24},
		{name: "empty name", groundName: "", paymentPoint: 8000, openHour: 9, closeHour: 23, errIs: ground.ErrEmptyName},
		{name: "negative payment point", groundName: "Gangnam Futsal", paymentPoint: -1, openHour: 9, closeHour: 23, errIs: ground.ErrNegativePaymentPoint},
		{name: "negative open hour", groundName: "Gangnam Futsal", paymentPoint: 8000, openHour: -1, closeHour: 23, errIs: ground.ErrInvalidOperatingHour},
		{name: "close hour past midnight", groundName: "Gangnam Futsal", paymentPoint: 8000, openHour: 9, closeHour: 25, errIs: ground.ErrInvalidOperatingHour},
		{name: "open equals close", groundName: "Gangnam Futsal", paymentPoint: 8000, openHour: 9, closeHour: 9, errIs: ground.ErrInvalidOperatingHour},
		{name: "open after close", groundName: "Gangnam Futsal", paymentPoint: 8000, openHour: 20, closeHour: 9, errIs: ground.ErrInvalidOperatingHour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ground.NewGround(uuid.New(), tt.groundName, "1 Teheran-ro", tt.paymentPoint, tt.openHour, tt.closeHour)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.groundName, g.Name())
			assert.Equal(t, tt.paymentPoint, g.PaymentPoint())
			assert.Equal(t, tt.openHour, g.OpenHour())
			assert.Equal(t, tt.closeHour, g.CloseHour())
		})
	}
}

func TestIsWithinOperatingHours(t *testing.T) {
	g, err := ground.NewGround(uuid.New(), "Gangnam Futsal", "1 Teheran-ro", 8000, 9, 22)
	require.NoError(t, err)

	at := func(hour int) time.Time {
		return time.Date(2026, 9, 14, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "inside the window", start: at(10), end: at(12), want: true},
		{name: "exactly the full window", start: at(9), end: at(22), want: true},
		{name: "starts at opening", start: at(9), end: at(10), want: true},
		{name: "ends at closing", start: at(21), end: at(22), want: true},
		{name: "starts before opening", start: at(8), end: at(10), want: false},
		{name: "ends after closing", start: at(21), end: at(23), want: false},
		{name: "entirely outside", start: at(6), end: at(7), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.IsWithinOperatingHours(tt.start, tt.end))
		})
	}
}

func TestIsWithinOperatingHoursMidnightClose(t *testing.T) {
	g, err := ground.NewGround(uuid.New(), "Night Arena", "3 Hongdae-gil", 8000, 18, 24)
	require.NoError(t, err)

	at := func(hour int) time.Time {
		// Go normalizes hour 24 to midnight of the following day.
		return time.Date(2026, 9, 14, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "closing slot ends at the following midnight", start: at(23), end: at(24), want: true},
		{name: "full evening through midnight", start: at(18), end: at(24), want: true},
		{name: "starts before opening", start: at(17), end: at(19), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.IsWithinOperatingHours(tt.start, tt.end))
		})
	}
}
