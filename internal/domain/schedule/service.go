package schedule

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type ScheduleService interface {
	// GetExpected resolves the caller's schedule, or employeeID's when the
	// caller may view other employees.
	GetExpected(ctx context.Context, employeeID *string) (ExpectedScheduleResponse, error)

	// ResolveFor resolves the schedule of an already loaded employee.
	ResolveFor(ctx context.Context, emp employee.Employee) (ExpectedSchedule, error)
}
