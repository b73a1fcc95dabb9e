package schedule

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// Resolve picks the expected schedule for emp: shift group first, then the
// individual override, then def. group must be the employee's shift group
// when emp.ShiftGroupID is set.
func Resolve(emp employee.Employee, group *ShiftGroup, def Default) (ExpectedSchedule, error) {
	if emp.ShiftGroupID != nil && *emp.ShiftGroupID != "" {
		if group == nil || group.ID != *emp.ShiftGroupID {
			return ExpectedSchedule{}, fmt.Errorf("%w: employee %s references shift group %s: %w",
				ErrConfiguration, emp.ID, *emp.ShiftGroupID, ErrShiftGroupNotFound)
		}
		sched, err := build(group.StartTime, group.EndTime, group.BreakDuration, SourceShiftGroup)
		if err != nil {
			return ExpectedSchedule{}, fmt.Errorf("shift group %s: %w", group.ID, err)
		}
		return sched, nil
	}

	hasStart := emp.StartTime != nil && *emp.StartTime != ""
	hasEnd := emp.EndTime != nil && *emp.EndTime != ""
	if hasStart != hasEnd {
		return ExpectedSchedule{}, fmt.Errorf("%w: employee %s has only one of start_time/end_time",
			ErrConfiguration, emp.ID)
	}

	if hasStart {
		breakMinutes := def.BreakDuration
		if emp.BreakDuration != nil {
			breakMinutes = *emp.BreakDuration
		}
		sched, err := build(*emp.StartTime, *emp.EndTime, breakMinutes, SourceIndividual)
		if err != nil {
			return ExpectedSchedule{}, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		return sched, nil
	}

	return ValidateDefault(def)
}

// ValidateDefault checks the configured system default. Called at startup so
// a broken default never reaches a balance computation.
func ValidateDefault(def Default) (ExpectedSchedule, error) {
	sched, err := build(def.StartTime, def.EndTime, def.BreakDuration, SourceDefault)
	if err != nil {
		return ExpectedSchedule{}, fmt.Errorf("system default: %w", err)
	}
	return sched, nil
}

func build(startTime, endTime string, breakMinutes int, source Source) (ExpectedSchedule, error) {
	start, ok := validator.ParseClock(startTime)
	if !ok {
		return ExpectedSchedule{}, fmt.Errorf("%w: start_time %q is not HH:MM", ErrConfiguration, startTime)
	}

	end, ok := validator.ParseClock(endTime)
	if !ok {
		return ExpectedSchedule{}, fmt.Errorf("%w: end_time %q is not HH:MM", ErrConfiguration, endTime)
	}

	if end <= start {
		return ExpectedSchedule{}, fmt.Errorf("%w: end_time %s must be after start_time %s", ErrConfiguration, endTime, startTime)
	}

	if breakMinutes < 0 || breakMinutes > end-start {
		return ExpectedSchedule{}, fmt.Errorf("%w: break_duration %d must be between 0 and %d",
			ErrConfiguration, breakMinutes, end-start)
	}

	return ExpectedSchedule{
		StartMinute:  start,
		EndMinute:    end,
		BreakMinutes: breakMinutes,
		Source:       source,
	}, nil
}
