package memory

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// LockForUpdate only checks existence. Transactions are already serialized
// by the store.
func (r *employeeRepository) LockForUpdate(ctx context.Context, id string) error {
	_, err := r.GetByID(ctx, id)
	return err
}

type shiftGroupRepository struct {
	store *Store
}

func NewShiftGroupRepository(store *Store) schedule.ShiftGroupRepository {
	return &shiftGroupRepository{store: store}
}

func (r *shiftGroupRepository) GetByID(ctx context.Context, id string) (schedule.ShiftGroup, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.shiftGroups[id]
	if !ok {
		return schedule.ShiftGroup{}, schedule.ErrShiftGroupNotFound
	}
	return g, nil
}
