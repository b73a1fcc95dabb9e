package schedule

import "context"

// ShiftGroupRepository is a read-only view over shift groups owned by
// organization management.
type ShiftGroupRepository interface {
	GetByID(ctx context.Context, id string) (ShiftGroup, error)
}
