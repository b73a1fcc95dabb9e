package punch

import (
	"time"
)

type Kind string

const (
	KindClockIn    Kind = "CLOCK_IN"
	KindBreakStart Kind = "BREAK_START"
	KindBreakEnd   Kind = "BREAK_END"
	KindClockOut   Kind = "CLOCK_OUT"
)

var KindValues = []string{
	string(KindClockIn),
	string(KindBreakStart),
	string(KindBreakEnd),
	string(KindClockOut),
}

func (k Kind) IsValid() bool {
	switch k {
	case KindClockIn, KindBreakStart, KindBreakEnd, KindClockOut:
		return true
	}
	return false
}

// Source tells whether an event was punched by the employee or synthesized
// from an approved adjustment request.
type Source string

const (
	SourceDevice     Source = "device"
	SourceAdjustment Source = "adjustment"
)

// LocationHint is carried through untouched.
type LocationHint struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
}

// Event is one immutable punch. Timestamp is stored in UTC and is the only
// ordering key.
type Event struct {
	ID           string
	EmployeeID   string
	Kind         Kind
	Timestamp    time.Time
	WorkDate     time.Time // local calendar day of Timestamp, midnight UTC
	Location     *LocationHint
	Source       Source
	AdjustmentID *string
	CreatedAt    time.Time
}

// DayBounds returns the [start, end) instants of the local calendar day that
// contains t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// WorkDateOf normalizes the local day of t to midnight UTC so it can be
// compared and stored as a plain DATE.
func WorkDateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
