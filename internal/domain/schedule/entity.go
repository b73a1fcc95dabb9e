package schedule

import (
	"fmt"
	"time"
)

// ShiftGroup is a named schedule template shared by many employees.
type ShiftGroup struct {
	ID            string
	CompanyID     string
	Name          string
	StartTime     string // HH:MM
	EndTime       string // HH:MM
	BreakDuration int    // minutes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Source string

const (
	SourceShiftGroup Source = "shift_group"
	SourceIndividual Source = "individual"
	SourceDefault    Source = "default"
)

// ExpectedSchedule is the resolved daily target for one employee.
// Minutes are counted from local midnight.
type ExpectedSchedule struct {
	StartMinute  int
	EndMinute    int
	BreakMinutes int
	Source       Source
}

// NetMinutes is the expected worked time: window minus break.
func (s ExpectedSchedule) NetMinutes() int {
	return (s.EndMinute - s.StartMinute) - s.BreakMinutes
}

// Default is the system fallback when an employee has neither a shift group
// nor an individual schedule.
type Default struct {
	StartTime     string
	EndTime       string
	BreakDuration int
}

var SystemDefault = Default{
	StartTime:     "09:00",
	EndTime:       "17:00",
	BreakDuration: 60,
}

// Clock renders minutes since midnight as HH:MM.
func Clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
