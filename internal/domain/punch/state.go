package punch

import (
	"fmt"
	"sort"
)

type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateWorking    State = "WORKING"
	StateOnBreak    State = "ON_BREAK"
	StateDone       State = "DONE"
)

// SortChronological orders events by timestamp, keeping insertion order for
// equal instants.
func SortChronological(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}

// CurrentState derives the day state from the last event of the day.
// todayEvents must be chronological.
func CurrentState(todayEvents []Event) State {
	if len(todayEvents) == 0 {
		return StateNotStarted
	}

	last := todayEvents[len(todayEvents)-1]
	switch last.Kind {
	case KindClockIn:
		return StateWorking
	case KindBreakStart:
		return StateOnBreak
	case KindBreakEnd:
		// a break already happened today, only clock out remains
		return StateWorking
	case KindClockOut:
		return StateDone
	}
	return StateNotStarted
}

// NextAllowed returns the single kind that may be punched next. ok is false
// once the day is done.
func NextAllowed(todayEvents []Event) (Kind, bool) {
	if len(todayEvents) == 0 {
		return KindClockIn, true
	}

	switch todayEvents[len(todayEvents)-1].Kind {
	case KindClockIn:
		return KindBreakStart, true
	case KindBreakStart:
		return KindBreakEnd, true
	case KindBreakEnd:
		return KindClockOut, true
	}
	return "", false
}

// ValidateNext rejects kind unless it is exactly NextAllowed(todayEvents).
func ValidateNext(todayEvents []Event, kind Kind) error {
	next, ok := NextAllowed(todayEvents)
	if !ok {
		return fmt.Errorf("%w: day already closed, got %s", ErrInvalidSequence, kind)
	}
	if kind != next {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidSequence, next, kind)
	}
	return nil
}
