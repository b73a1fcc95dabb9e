package timesheet

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

// Balance is worked minutes minus the expected net minutes of the schedule.
func Balance(report DayReport, expected schedule.ExpectedSchedule) int {
	return report.WorkedMinutes - expected.NetMinutes()
}

// ApplyBalance returns a copy of reports with BalanceMinutes filled in.
func ApplyBalance(reports []DayReport, expected schedule.ExpectedSchedule) []DayReport {
	out := make([]DayReport, len(reports))
	for i, r := range reports {
		r.BalanceMinutes = Balance(r, expected)
		out[i] = r
	}
	return out
}

// Summarize sums the days that count toward totals and tallies statuses.
func Summarize(reports []DayReport) Totals {
	var t Totals
	for _, r := range reports {
		switch r.Status {
		case DayStatusComplete:
			t.CompleteDays++
		case DayStatusIncomplete:
			t.IncompleteDays++
		case DayStatusAbsent:
			t.AbsentDays++
		case DayStatusInProgress:
			t.InProgressDays++
		}

		if !r.CountsTowardTotals() {
			continue
		}
		t.CountedDays++
		t.WorkedMinutes += r.WorkedMinutes
		t.BreakMinutes += r.BreakMinutes
		t.BalanceMinutes += r.BalanceMinutes
	}
	return t
}

// FormatMinutes renders signed minutes as HH:MM, e.g. -90 -> "-01:30".
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
