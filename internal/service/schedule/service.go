package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type ScheduleServiceImpl struct {
	employee.EmployeeRepository
	schedule.ShiftGroupRepository
	defaultSchedule schedule.Default
}

// GetExpected implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetExpected(ctx context.Context, employeeID *string) (schedule.ExpectedScheduleResponse, error) {
	principal, err := user.PrincipalFromContext(ctx)
	if err != nil {
		return schedule.ExpectedScheduleResponse{}, err
	}

	emp, err := employee.LoadVisible(ctx, s.EmployeeRepository, principal, employeeID)
	if err != nil {
		return schedule.ExpectedScheduleResponse{}, err
	}

	expected, err := s.ResolveFor(ctx, emp)
	if err != nil {
		return schedule.ExpectedScheduleResponse{}, err
	}

	loc, err := emp.Location()
	if err != nil {
		return schedule.ExpectedScheduleResponse{}, err
	}

	return schedule.NewExpectedScheduleResponse(emp.ID, loc.String(), expected), nil
}

// ResolveFor implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ResolveFor(ctx context.Context, emp employee.Employee) (schedule.ExpectedSchedule, error) {
	var group *schedule.ShiftGroup
	if emp.ShiftGroupID != nil && *emp.ShiftGroupID != "" {
		g, err := s.ShiftGroupRepository.GetByID(ctx, *emp.ShiftGroupID)
		switch {
		case err == nil:
			group = &g
		case errors.Is(err, schedule.ErrShiftGroupNotFound):
			// Resolve reports the dangling reference as a configuration error.
		default:
			return schedule.ExpectedSchedule{}, fmt.Errorf("failed to get shift group: %w", err)
		}
	}

	expected, err := schedule.Resolve(emp, group, s.defaultSchedule)
	if err != nil {
		slog.Error("schedule configuration error",
			"employee_id", emp.ID,
			"shift_group_id", emp.ShiftGroupID,
			"error", err,
		)
		return schedule.ExpectedSchedule{}, err
	}

	return expected, nil
}

func NewScheduleService(
	employeeRepository employee.EmployeeRepository,
	shiftGroupRepository schedule.ShiftGroupRepository,
	defaultSchedule schedule.Default,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		EmployeeRepository:   employeeRepository,
		ShiftGroupRepository: shiftGroupRepository,
		defaultSchedule:      defaultSchedule,
	}
}
