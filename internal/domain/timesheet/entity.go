package timesheet

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
)

type DayStatus string

const (
	DayStatusComplete   DayStatus = "COMPLETE"
	DayStatusIncomplete DayStatus = "INCOMPLETE"
	DayStatusAbsent     DayStatus = "ABSENT"
	DayStatusInProgress DayStatus = "IN_PROGRESS"
)

// DayReport is derived from the punch log on demand and never stored.
type DayReport struct {
	Date           time.Time // local calendar day, midnight UTC
	ClockIn        *punch.Event
	BreakStart     *punch.Event
	BreakEnd       *punch.Event
	ClockOut       *punch.Event
	WorkedMinutes  int
	BreakMinutes   int
	BalanceMinutes int
	Status         DayStatus
}

// CountsTowardTotals reports whether the day enters aggregate balances.
// Absent days and the running day are listed but not summed.
func (d DayReport) CountsTowardTotals() bool {
	return d.Status == DayStatusComplete || d.Status == DayStatusIncomplete
}

type Totals struct {
	WorkedMinutes  int
	BreakMinutes   int
	BalanceMinutes int
	CountedDays    int
	CompleteDays   int
	IncompleteDays int
	AbsentDays     int
	InProgressDays int
}
