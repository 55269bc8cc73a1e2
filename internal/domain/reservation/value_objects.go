package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSlotRange   = errors.New("slot start must be before slot end")
	ErrSlotNotHourAligned = errors.New("slot boundaries must be aligned to the hour")
	ErrSlotSpansMidnight  = errors.New("slot cannot span midnight")
)

// TimeSlot is the bookable unit of a ground: a half-open [start, end) range
// on a single operating day, aligned to whole hours. Because the range is
// half-open, an end of exactly the following midnight still belongs to the
// start's day; that is the closing slot of a ground open until 24.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	start = start.Truncate(time.Second)
	end = end.Truncate(time.Second)

	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidSlotRange
	}
	if start.Minute() != 0 || start.Second() != 0 || end.Minute() != 0 || end.Second() != 0 {
		return TimeSlot{}, ErrSlotNotHourAligned
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	sameDay := sy == ey && sm == em && sd == ed
	nextMidnight := time.Date(sy, sm, sd+1, 0, 0, 0, 0, start.Location())
	if !sameDay && !end.Equal(nextMidnight) {
		return TimeSlot{}, ErrSlotSpansMidnight
	}

	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// ToTstzrange renders the slot as a PostgreSQL half-open tstzrange literal,
// the representation the reservations exclusion constraint is built on.
func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) IsInFutureAt(now time.Time) bool {
	return ts.start.After(now)
}

// Money is a point amount. Points are integral; there is no fractional unit.
type Money struct {
	points int64
}

func NewMoney(points int64) (Money, error) {
	if points < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{points: points}, nil
}

func (m Money) Points() int64 {
	return m.points
}
