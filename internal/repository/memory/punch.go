package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/punch"
)

type punchRepository struct {
	store *Store
}

func NewPunchRepository(store *Store) punch.PunchRepository {
	return &punchRepository{store: store}
}

func (r *punchRepository) Create(ctx context.Context, ev punch.Event) (punch.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if ev.Source == punch.SourceDevice {
		for _, existing := range r.store.punches {
			if existing.Source == punch.SourceDevice &&
				existing.EmployeeID == ev.EmployeeID &&
				existing.Kind == ev.Kind &&
				existing.WorkDate.Equal(ev.WorkDate) {
				return punch.Event{}, fmt.Errorf("%w: %s already recorded for %s",
					punch.ErrInvalidSequence, ev.Kind, ev.WorkDate.Format("2006-01-02"))
			}
		}
	}

	if ev.ID == "" {
		id, err := newID()
		if err != nil {
			return punch.Event{}, fmt.Errorf("failed to generate punch id: %w", err)
		}
		ev.ID = id
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	ev.Timestamp = ev.Timestamp.UTC()

	r.store.punches = append(r.store.punches, ev)
	id := ev.ID
	r.store.recordUndo(ctx, func(s *Store) { s.removePunch(id) })
	return ev, nil
}

func (r *punchRepository) GetByID(ctx context.Context, id string) (punch.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, ev := range r.store.punches {
		if ev.ID == id {
			return ev, nil
		}
	}
	return punch.Event{}, punch.ErrPunchNotFound
}

func (r *punchRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]punch.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := make([]punch.Event, 0)
	for _, ev := range r.store.punches {
		if ev.EmployeeID != employeeID || ev.Timestamp.Before(from) || !ev.Timestamp.Before(to) {
			continue
		}
		events = append(events, ev)
	}

	punch.SortChronological(events)
	return events, nil
}
