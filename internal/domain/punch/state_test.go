package punch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventsOf(kinds ...Kind) []Event {
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	events := make([]Event, len(kinds))
	for i, k := range kinds {
		events[i] = Event{Kind: k, Timestamp: base.Add(time.Duration(i) * time.Hour), Source: SourceDevice}
	}
	return events
}

func TestNextAllowed(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   Kind
		ok     bool
		state  State
	}{
		{"no events", nil, KindClockIn, true, StateNotStarted},
		{"clocked in", eventsOf(KindClockIn), KindBreakStart, true, StateWorking},
		{"on break", eventsOf(KindClockIn, KindBreakStart), KindBreakEnd, true, StateOnBreak},
		{"back from break", eventsOf(KindClockIn, KindBreakStart, KindBreakEnd), KindClockOut, true, StateWorking},
		{"clocked out", eventsOf(KindClockIn, KindBreakStart, KindBreakEnd, KindClockOut), "", false, StateDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextAllowed(tt.events)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.state, CurrentState(tt.events))
		})
	}
}

func TestValidateNext(t *testing.T) {
	t.Run("accepts the next kind", func(t *testing.T) {
		assert.NoError(t, ValidateNext(eventsOf(KindClockIn), KindBreakStart))
	})

	t.Run("rejects clock out while break start is due", func(t *testing.T) {
		err := ValidateNext(eventsOf(KindClockIn), KindClockOut)
		require.ErrorIs(t, err, ErrInvalidSequence)
		assert.Contains(t, err.Error(), "expected BREAK_START")
	})

	t.Run("rejects a second break", func(t *testing.T) {
		err := ValidateNext(eventsOf(KindClockIn, KindBreakStart, KindBreakEnd), KindBreakStart)
		assert.ErrorIs(t, err, ErrInvalidSequence)
	})

	t.Run("rejects anything after clock out", func(t *testing.T) {
		for _, k := range []Kind{KindClockIn, KindBreakStart, KindBreakEnd, KindClockOut} {
			err := ValidateNext(eventsOf(KindClockIn, KindBreakStart, KindBreakEnd, KindClockOut), k)
			assert.ErrorIs(t, err, ErrInvalidSequence, k)
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		assert.ErrorIs(t, ValidateNext(eventsOf(KindClockIn), KindClockIn), ErrInvalidSequence)
	})
}

func TestSortChronological(t *testing.T) {
	events := eventsOf(KindClockIn, KindBreakStart, KindBreakEnd)
	events[0], events[2] = events[2], events[0]

	SortChronological(events)

	assert.Equal(t, KindClockIn, events[0].Kind)
	assert.Equal(t, KindBreakStart, events[1].Kind)
	assert.Equal(t, KindBreakEnd, events[2].Kind)
}

func TestWorkDateOf(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 20:30 UTC on the 4th is 03:30 on the 5th in Jakarta.
	ts := time.Date(2024, 3, 4, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), WorkDateOf(ts, jakarta))
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), WorkDateOf(ts, time.UTC))

	start, end := DayBounds(ts, jakarta)
	assert.Equal(t, time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
