package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// LockForUpdate takes a row lock on the employee inside the current
	// transaction. It serializes punch submissions per employee.
	LockForUpdate(ctx context.Context, id string) error
}
