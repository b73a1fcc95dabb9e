package timesheet

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
)

// Reconcile pairs punch events into one DayReport per calendar day in
// [from, to] (both work dates, midnight UTC). Days are cut in loc. Open
// intervals on the day containing now accrue up to now; open intervals on
// past days stay open. BalanceMinutes is left at zero, see ApplyBalance.
func Reconcile(events []punch.Event, from, to time.Time, now time.Time, loc *time.Location) []DayReport {
	byDay := make(map[time.Time][]punch.Event)
	for _, ev := range events {
		day := punch.WorkDateOf(ev.Timestamp, loc)
		byDay[day] = append(byDay[day], ev)
	}

	today := punch.WorkDateOf(now, loc)

	var reports []DayReport
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		reports = append(reports, reconcileDay(day, byDay[day], day.Equal(today), now))
	}
	return reports
}

var dayKinds = []punch.Kind{punch.KindClockIn, punch.KindBreakStart, punch.KindBreakEnd, punch.KindClockOut}

func reconcileDay(day time.Time, events []punch.Event, isToday bool, now time.Time) DayReport {
	report := DayReport{Date: day, Status: DayStatusAbsent}
	if len(events) == 0 {
		return report
	}

	picked := pickPerKind(events)
	report.ClockIn = picked[punch.KindClockIn]
	report.BreakStart = picked[punch.KindBreakStart]
	report.BreakEnd = picked[punch.KindBreakEnd]
	report.ClockOut = picked[punch.KindClockOut]

	if report.BreakStart == nil && report.BreakEnd == nil {
		report.WorkedMinutes = span(report.ClockIn, report.ClockOut)
	} else {
		report.WorkedMinutes = span(report.ClockIn, report.BreakStart) + span(report.BreakEnd, report.ClockOut)
		report.BreakMinutes = span(report.BreakStart, report.BreakEnd)
	}

	// Fixed kind order keeps equal timestamps deterministic under the stable sort.
	ordered := make([]punch.Event, 0, len(picked))
	for _, kind := range dayKinds {
		if ev, ok := picked[kind]; ok {
			ordered = append(ordered, *ev)
		}
	}
	punch.SortChronological(ordered)
	last := ordered[len(ordered)-1]

	if isToday {
		accrued := minutesBetween(last.Timestamp, now)
		switch {
		case last.Kind == punch.KindClockIn && report.BreakStart == nil && report.ClockOut == nil:
			report.WorkedMinutes += accrued
		case last.Kind == punch.KindBreakStart && report.BreakEnd == nil:
			report.BreakMinutes += accrued
		case last.Kind == punch.KindBreakEnd && report.ClockOut == nil:
			report.WorkedMinutes += accrued
		}
	}

	switch {
	case isToday && last.Kind != punch.KindClockOut:
		report.Status = DayStatusInProgress
	case len(ordered) == 4 && last.Kind == punch.KindClockOut:
		report.Status = DayStatusComplete
	default:
		report.Status = DayStatusIncomplete
	}

	return report
}

// pickPerKind keeps one event per kind. An event synthesized from an approved
// adjustment replaces device punches of the same kind, the most recently
// approved one winning. Among device punches the earliest wins.
func pickPerKind(events []punch.Event) map[punch.Kind]*punch.Event {
	picked := make(map[punch.Kind]*punch.Event, 4)
	for i := range events {
		ev := events[i]
		current, ok := picked[ev.Kind]
		if !ok || supersedes(ev, *current) {
			picked[ev.Kind] = &ev
		}
	}
	return picked
}

func supersedes(candidate, current punch.Event) bool {
	candidateAdj := candidate.Source == punch.SourceAdjustment
	currentAdj := current.Source == punch.SourceAdjustment

	switch {
	case candidateAdj && !currentAdj:
		return true
	case !candidateAdj && currentAdj:
		return false
	case candidateAdj && currentAdj:
		return candidate.CreatedAt.After(current.CreatedAt)
	default:
		return candidate.Timestamp.Before(current.Timestamp)
	}
}

func span(from, to *punch.Event) int {
	if from == nil || to == nil {
		return 0
	}
	return minutesBetween(from.Timestamp, to.Timestamp)
}

// minutesBetween truncates to whole minutes and never goes negative.
func minutesBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Minutes())
}
