package employee

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// LoadVisible loads employeeID, or the caller's own record when it is nil or
// empty, and checks the caller may read it. Employees of other companies are
// reported as not found.
func LoadVisible(ctx context.Context, repo EmployeeRepository, p user.Principal, employeeID *string) (Employee, error) {
	id := p.EmployeeID
	if employeeID != nil && *employeeID != "" {
		id = *employeeID
	}

	emp, err := repo.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	if emp.CompanyID != p.CompanyID {
		return Employee{}, ErrEmployeeNotFound
	}
	if !emp.VisibleTo(p) {
		return Employee{}, user.ErrInsufficientPermissions
	}

	return emp, nil
}
