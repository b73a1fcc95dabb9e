package timesheet

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func at(d time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc)
}

func device(kind punch.Kind, ts time.Time) punch.Event {
	return punch.Event{ID: string(kind) + ts.String(), Kind: kind, Timestamp: ts, Source: punch.SourceDevice, CreatedAt: ts}
}

func corrected(kind punch.Kind, ts, approvedAt time.Time) punch.Event {
	adjID := "adj-" + approvedAt.String()
	return punch.Event{ID: adjID, Kind: kind, Timestamp: ts, Source: punch.SourceAdjustment, AdjustmentID: &adjID, CreatedAt: approvedAt}
}

func fullDay(d time.Time, loc *time.Location) []punch.Event {
	return []punch.Event{
		device(punch.KindClockIn, at(d, 9, 0, loc)),
		device(punch.KindBreakStart, at(d, 12, 0, loc)),
		device(punch.KindBreakEnd, at(d, 13, 0, loc)),
		device(punch.KindClockOut, at(d, 18, 0, loc)),
	}
}

func reconcileOne(t *testing.T, events []punch.Event, now time.Time) DayReport {
	t.Helper()
	reports := Reconcile(events, day, day, now, time.UTC)
	require.Len(t, reports, 1)
	return reports[0]
}

func TestReconcile_CompleteDay(t *testing.T) {
	nextDay := day.AddDate(0, 0, 1)
	report := reconcileOne(t, fullDay(day, time.UTC), at(nextDay, 8, 0, time.UTC))

	expected := schedule.ExpectedSchedule{StartMinute: 9 * 60, EndMinute: 18 * 60, BreakMinutes: 60}

	assert.Equal(t, 480, report.WorkedMinutes)
	assert.Equal(t, 60, report.BreakMinutes)
	assert.Equal(t, 0, Balance(report, expected))
	assert.Equal(t, DayStatusComplete, report.Status)
	require.NotNil(t, report.ClockOut)
	assert.Equal(t, punch.KindClockOut, report.ClockOut.Kind)
}

func TestReconcile_TodayInProgressAccruesToNow(t *testing.T) {
	events := fullDay(day, time.UTC)[:3]
	report := reconcileOne(t, events, at(day, 15, 0, time.UTC))

	assert.Equal(t, DayStatusInProgress, report.Status)
	assert.Equal(t, 300, report.WorkedMinutes)
	assert.Equal(t, 60, report.BreakMinutes)
}

func TestReconcile_TodayOnBreakAccruesBreak(t *testing.T) {
	events := fullDay(day, time.UTC)[:2]
	report := reconcileOne(t, events, at(day, 12, 30, time.UTC))

	assert.Equal(t, DayStatusInProgress, report.Status)
	assert.Equal(t, 180, report.WorkedMinutes)
	assert.Equal(t, 30, report.BreakMinutes)
}

func TestReconcile_TodayOnlyClockIn(t *testing.T) {
	events := fullDay(day, time.UTC)[:1]
	report := reconcileOne(t, events, at(day, 11, 15, time.UTC))

	assert.Equal(t, DayStatusInProgress, report.Status)
	assert.Equal(t, 135, report.WorkedMinutes)
	assert.Equal(t, 0, report.BreakMinutes)
}

func TestReconcile_TodayClosedIsComplete(t *testing.T) {
	report := reconcileOne(t, fullDay(day, time.UTC), at(day, 20, 0, time.UTC))

	assert.Equal(t, DayStatusComplete, report.Status)
	assert.Equal(t, 480, report.WorkedMinutes)
}

func TestReconcile_PastDayIsNotClosed(t *testing.T) {
	events := fullDay(day, time.UTC)[:3]
	report := reconcileOne(t, events, at(day.AddDate(0, 0, 3), 10, 0, time.UTC))

	assert.Equal(t, DayStatusIncomplete, report.Status)
	assert.Equal(t, 180, report.WorkedMinutes)
	assert.Equal(t, 60, report.BreakMinutes)
}

func TestReconcile_ClockInClockOutOnly(t *testing.T) {
	events := []punch.Event{
		device(punch.KindClockIn, at(day, 8, 30, time.UTC)),
		device(punch.KindClockOut, at(day, 17, 0, time.UTC)),
	}
	report := reconcileOne(t, events, at(day.AddDate(0, 0, 1), 9, 0, time.UTC))

	assert.Equal(t, 510, report.WorkedMinutes)
	assert.Equal(t, 0, report.BreakMinutes)
	assert.Equal(t, DayStatusIncomplete, report.Status)
}

func TestReconcile_BreakPairOnly(t *testing.T) {
	events := []punch.Event{
		device(punch.KindBreakStart, at(day, 12, 0, time.UTC)),
		device(punch.KindBreakEnd, at(day, 12, 45, time.UTC)),
	}
	report := reconcileOne(t, events, at(day.AddDate(0, 0, 1), 9, 0, time.UTC))

	assert.Equal(t, 0, report.WorkedMinutes)
	assert.Equal(t, 45, report.BreakMinutes)
	assert.Equal(t, DayStatusIncomplete, report.Status)
}

func TestReconcile_TruncatesToWholeMinutes(t *testing.T) {
	in := at(day, 9, 0, time.UTC).Add(30 * time.Second)
	out := at(day, 9, 59, time.UTC).Add(59 * time.Second)
	report := reconcileOne(t, []punch.Event{device(punch.KindClockIn, in), device(punch.KindClockOut, out)}, at(day.AddDate(0, 0, 1), 0, 0, time.UTC))

	assert.Equal(t, 59, report.WorkedMinutes)
}

func TestReconcile_DuplicateDevicePunchEarliestWins(t *testing.T) {
	events := append(fullDay(day, time.UTC), device(punch.KindClockIn, at(day, 9, 30, time.UTC)))
	punch.SortChronological(events)
	report := reconcileOne(t, events, at(day.AddDate(0, 0, 1), 0, 0, time.UTC))

	require.NotNil(t, report.ClockIn)
	assert.Equal(t, at(day, 9, 0, time.UTC), report.ClockIn.Timestamp)
	assert.Equal(t, 480, report.WorkedMinutes)
}

func TestReconcile_AdjustmentSupersedesDevice(t *testing.T) {
	now := at(day.AddDate(0, 0, 2), 9, 0, time.UTC)

	t.Run("fills a missing punch", func(t *testing.T) {
		events := append(fullDay(day, time.UTC)[:3], corrected(punch.KindClockOut, at(day, 17, 0, time.UTC), now.Add(-time.Hour)))
		report := reconcileOne(t, events, now)

		assert.Equal(t, DayStatusComplete, report.Status)
		assert.Equal(t, 420, report.WorkedMinutes)
		assert.Equal(t, punch.SourceAdjustment, report.ClockOut.Source)
	})

	t.Run("replaces a device punch", func(t *testing.T) {
		events := append(fullDay(day, time.UTC), corrected(punch.KindClockIn, at(day, 8, 0, time.UTC), now.Add(-time.Hour)))
		report := reconcileOne(t, events, now)

		assert.Equal(t, at(day, 8, 0, time.UTC), report.ClockIn.Timestamp)
		assert.Equal(t, 540, report.WorkedMinutes)
	})

	t.Run("latest approval wins", func(t *testing.T) {
		events := append(fullDay(day, time.UTC),
			corrected(punch.KindClockOut, at(day, 19, 0, time.UTC), now.Add(-time.Hour)),
			corrected(punch.KindClockOut, at(day, 17, 30, time.UTC), now.Add(-2*time.Hour)),
		)
		report := reconcileOne(t, events, now)

		assert.Equal(t, at(day, 19, 0, time.UTC), report.ClockOut.Timestamp)
		assert.Equal(t, 540, report.WorkedMinutes)
	})
}

func TestReconcile_EveryDayInRange(t *testing.T) {
	from := day
	to := day.AddDate(0, 0, 4)
	events := append(fullDay(day, time.UTC), fullDay(day.AddDate(0, 0, 2), time.UTC)...)

	reports := Reconcile(events, from, to, at(to.AddDate(0, 0, 1), 0, 0, time.UTC), time.UTC)

	require.Len(t, reports, 5)
	statuses := make([]DayStatus, len(reports))
	for i, r := range reports {
		statuses[i] = r.Status
		assert.Equal(t, from.AddDate(0, 0, i), r.Date)
	}
	assert.Equal(t, []DayStatus{DayStatusComplete, DayStatusAbsent, DayStatusComplete, DayStatusAbsent, DayStatusAbsent}, statuses)

	for _, r := range reports {
		if r.Status == DayStatusAbsent {
			assert.Zero(t, r.WorkedMinutes)
			assert.Zero(t, r.BreakMinutes)
		}
	}
}

func TestReconcile_GroupsByEmployeeLocalDay(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// An early clock-in at 06:00 local is 23:00 UTC the previous day.
	events := []punch.Event{
		device(punch.KindClockIn, at(day, 6, 0, jakarta)),
		device(punch.KindClockOut, at(day, 14, 0, jakarta)),
	}

	reports := Reconcile(events, day.AddDate(0, 0, -1), day, at(day.AddDate(0, 0, 5), 0, 0, time.UTC), jakarta)

	require.Len(t, reports, 2)
	assert.Equal(t, DayStatusAbsent, reports[0].Status)
	assert.Equal(t, 480, reports[1].WorkedMinutes)
}

func TestReconcile_Idempotent(t *testing.T) {
	events := append(fullDay(day, time.UTC), fullDay(day.AddDate(0, 0, 1), time.UTC)[:2]...)
	snapshot := append([]punch.Event(nil), events...)
	now := at(day.AddDate(0, 0, 1), 14, 0, time.UTC)
	expected := schedule.ExpectedSchedule{StartMinute: 540, EndMinute: 1080, BreakMinutes: 60}

	first := ApplyBalance(Reconcile(events, day, day.AddDate(0, 0, 1), now, time.UTC), expected)
	second := ApplyBalance(Reconcile(events, day, day.AddDate(0, 0, 1), now, time.UTC), expected)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, events)
}

func TestReconcile_AllFourKindsInOrderIsComplete(t *testing.T) {
	now := at(day.AddDate(0, 0, 1), 0, 0, time.UTC)
	for start := 0; start < 12; start++ {
		events := []punch.Event{
			device(punch.KindClockIn, at(day, start, 0, time.UTC)),
			device(punch.KindBreakStart, at(day, start+1, 0, time.UTC)),
			device(punch.KindBreakEnd, at(day, start+1, 10, time.UTC)),
			device(punch.KindClockOut, at(day, start+5, 0, time.UTC)),
		}
		report := reconcileOne(t, events, now)
		assert.Equal(t, DayStatusComplete, report.Status)
		assert.Equal(t, 290, report.WorkedMinutes)
		assert.Equal(t, 10, report.BreakMinutes)
	}
}

func TestReconcile_EqualTimestampsAreDeterministic(t *testing.T) {
	t.Run("zero-length break today keeps accruing work", func(t *testing.T) {
		events := []punch.Event{
			device(punch.KindClockIn, at(day, 9, 0, time.UTC)),
			device(punch.KindBreakStart, at(day, 12, 0, time.UTC)),
			device(punch.KindBreakEnd, at(day, 12, 0, time.UTC)),
		}
		for i := 0; i < 50; i++ {
			report := reconcileOne(t, events, at(day, 15, 0, time.UTC))
			require.Equal(t, DayStatusInProgress, report.Status)
			require.Equal(t, 360, report.WorkedMinutes)
			require.Equal(t, 0, report.BreakMinutes)
		}
	})

	t.Run("clock out in the break end minute closes the day", func(t *testing.T) {
		events := []punch.Event{
			device(punch.KindClockIn, at(day, 9, 0, time.UTC)),
			device(punch.KindBreakStart, at(day, 12, 0, time.UTC)),
			device(punch.KindBreakEnd, at(day, 13, 0, time.UTC)),
			device(punch.KindClockOut, at(day, 13, 0, time.UTC)),
		}
		for i := 0; i < 50; i++ {
			report := reconcileOne(t, events, at(day.AddDate(0, 0, 1), 8, 0, time.UTC))
			require.Equal(t, DayStatusComplete, report.Status)
			require.Equal(t, 180, report.WorkedMinutes)
		}
	})
}
