package punch

import (
	"context"
	"time"
)

// PunchRepository is the append-only punch log.
type PunchRepository interface {
	// Create appends a new event. A duplicate device punch for the same kind
	// on the same work date is reported as ErrInvalidSequence.
	Create(ctx context.Context, event Event) (Event, error)

	GetByID(ctx context.Context, id string) (Event, error)

	// ListByEmployee returns events with from <= timestamp < to, oldest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)
}
